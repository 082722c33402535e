// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
)

// auditEntityType tags expense entries in the audit trail.
const auditEntityType = "Expense"

// recordAudit appends an audit entry for a committed transition. The
// transition has already been stored, so an append failure is logged and
// swallowed instead of rolled back.
func recordAudit(ctx context.Context, repo adapter.AuditLogRepository, entry *entity.AuditLog) {
	if err := repo.Append(ctx, entry); err != nil {
		slog.Error("Failed to append audit entry",
			"entityType", entry.EntityType,
			"entityID", entry.EntityID,
			"action", entry.Action,
			"error", err,
		)
	}
}

// expenseSummary renders the before/after value summary used in audit entries.
func expenseSummary(e *entity.Expense) string {
	return fmt.Sprintf("Title: %s, Amount: %s %s", e.Title, e.Amount.StringFixed(2), e.Currency)
}
