// Package settings contains the expense policy settings use cases.
package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// GetSettingsUseCase returns the current expense policy.
type GetSettingsUseCase struct {
	settingsService adapter.SettingsService
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(settingsService adapter.SettingsService) *GetSettingsUseCase {
	return &GetSettingsUseCase{settingsService: settingsService}
}

// Execute returns a snapshot of the settings.
func (uc *GetSettingsUseCase) Execute(ctx context.Context) (*entity.Settings, error) {
	settings, err := uc.settingsService.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// UpdateSettingsInput represents the input for replacing the policy.
type UpdateSettingsInput struct {
	AutoApprovalThreshold decimal.Decimal
	AllowedCurrencies     []string
	DefaultCurrency       string
}

// UpdateSettingsUseCase replaces the expense policy.
type UpdateSettingsUseCase struct {
	settingsService adapter.SettingsService
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(settingsService adapter.SettingsService) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{settingsService: settingsService}
}

// Execute validates and stores the new policy.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*entity.Settings, error) {
	if input.AutoApprovalThreshold.IsNegative() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidAmount,
			"auto-approval threshold cannot be negative",
			domainerror.ErrInvalidAmount,
		)
	}

	currencies := make([]string, 0, len(input.AllowedCurrencies))
	for _, c := range input.AllowedCurrencies {
		if trimmed := strings.ToUpper(strings.TrimSpace(c)); trimmed != "" {
			currencies = append(currencies, trimmed)
		}
	}
	if len(currencies) == 0 {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeCurrencyNotAllowed,
			"at least one allowed currency is required",
			domainerror.ErrCurrencyNotAllowed,
		)
	}

	defaultCurrency := strings.ToUpper(strings.TrimSpace(input.DefaultCurrency))
	found := false
	for _, c := range currencies {
		if c == defaultCurrency {
			found = true
			break
		}
	}
	if !found {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeCurrencyNotAllowed,
			"default currency must be in the allowed set",
			domainerror.ErrCurrencyNotAllowed,
		)
	}

	newSettings := &entity.Settings{
		AutoApprovalThreshold: input.AutoApprovalThreshold,
		AllowedCurrencies:     currencies,
		DefaultCurrency:       defaultCurrency,
	}
	if err := uc.settingsService.Update(ctx, newSettings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return newSettings, nil
}
