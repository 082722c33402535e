package adapters

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/config"
	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
)

// settingsService implements adapter.SettingsService with an in-process
// snapshot seeded from configuration. Settings are policy knobs, not data;
// they reset to the configured defaults on restart.
type settingsService struct {
	mu       sync.RWMutex
	settings *entity.Settings
}

// NewSettingsService creates a settings service seeded from the expense
// configuration.
func NewSettingsService(cfg *config.ExpenseConfig) adapter.SettingsService {
	currencies := make([]string, len(cfg.AllowedCurrencies))
	copy(currencies, cfg.AllowedCurrencies)
	return &settingsService{
		settings: &entity.Settings{
			AutoApprovalThreshold: decimal.Zero,
			AllowedCurrencies:     currencies,
			DefaultCurrency:       cfg.DefaultCurrency,
		},
	}
}

// Get returns a snapshot of the current settings.
func (s *settingsService) Get(_ context.Context) (*entity.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone(), nil
}

// Update replaces the current settings.
func (s *settingsService) Update(_ context.Context, settings *entity.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings.Clone()
	return nil
}
