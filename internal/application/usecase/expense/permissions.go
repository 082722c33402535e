// Package expense contains expense lifecycle use cases.
package expense

import "github.com/expense-claims/backend/internal/domain/entity"

// Permissions carries the per-expense action flags shown to a given actor.
type Permissions struct {
	CanEdit    bool
	CanDelete  bool
	CanSubmit  bool
	CanApprove bool
	CanReject  bool
	CanPay     bool
}

// The predicates below are the single source of truth for the transition
// guards. Both the mutating use cases and the list projection call them, so
// the two can not drift apart.

func canEdit(status entity.ExpenseStatus, isOwner bool) bool {
	return isOwner && (status == entity.ExpenseStatusDraft || status == entity.ExpenseStatusRejected)
}

func canDelete(status entity.ExpenseStatus, isOwner, isManager bool) bool {
	return (isOwner || isManager) && status == entity.ExpenseStatusDraft
}

func canSubmit(status entity.ExpenseStatus, isOwner bool) bool {
	return isOwner && (status == entity.ExpenseStatusDraft || status == entity.ExpenseStatusRejected)
}

func canApprove(status entity.ExpenseStatus, isManager bool) bool {
	return isManager && status == entity.ExpenseStatusSubmitted
}

func canReject(status entity.ExpenseStatus, isManager bool) bool {
	return isManager && status == entity.ExpenseStatusSubmitted
}

func canPay(status entity.ExpenseStatus, isManager bool) bool {
	return isManager && status == entity.ExpenseStatusApproved
}

// PermissionsFor computes the action flags for one expense as seen by an
// actor with the given ownership and role.
func PermissionsFor(status entity.ExpenseStatus, isOwner, isManager bool) Permissions {
	return Permissions{
		CanEdit:    canEdit(status, isOwner),
		CanDelete:  canDelete(status, isOwner, isManager),
		CanSubmit:  canSubmit(status, isOwner),
		CanApprove: canApprove(status, isManager),
		CanReject:  canReject(status, isManager),
		CanPay:     canPay(status, isManager),
	}
}
