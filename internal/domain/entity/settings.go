// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// Settings holds the company-wide expense policy knobs.
type Settings struct {
	// AutoApprovalThreshold auto-approves submissions at or under this
	// amount. Zero disables auto-approval.
	AutoApprovalThreshold decimal.Decimal
	AllowedCurrencies     []string
	DefaultCurrency       string
}

// Clone returns a copy of the settings.
func (s *Settings) Clone() *Settings {
	cp := *s
	cp.AllowedCurrencies = make([]string, len(s.AllowedCurrencies))
	copy(cp.AllowedCurrencies, s.AllowedCurrencies)
	return &cp
}
