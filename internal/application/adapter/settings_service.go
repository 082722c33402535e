// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/expense-claims/backend/internal/domain/entity"
)

// SettingsService provides access to the company-wide expense policy.
type SettingsService interface {
	// Get returns a snapshot of the current settings.
	Get(ctx context.Context) (*entity.Settings, error)

	// Update replaces the current settings.
	Update(ctx context.Context, settings *entity.Settings) error
}
