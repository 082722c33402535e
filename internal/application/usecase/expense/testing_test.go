// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
	"github.com/expense-claims/backend/internal/integration/persistence/memory"
)

// stubSettingsService is an in-test settings backend with a configurable
// auto-approval threshold.
type stubSettingsService struct {
	settings *entity.Settings
}

func newStubSettingsService() *stubSettingsService {
	return &stubSettingsService{
		settings: &entity.Settings{
			AutoApprovalThreshold: decimal.Zero,
			AllowedCurrencies:     []string{"USD", "EUR", "GBP", "CAD"},
			DefaultCurrency:       "USD",
		},
	}
}

func (s *stubSettingsService) Get(_ context.Context) (*entity.Settings, error) {
	return s.settings.Clone(), nil
}

func (s *stubSettingsService) Update(_ context.Context, settings *entity.Settings) error {
	s.settings = settings.Clone()
	return nil
}

// fixture wires the expense use cases against in-memory stores.
type fixture struct {
	expenses   adapter.ExpenseRepository
	categories adapter.CategoryRepository
	auditLogs  adapter.AuditLogRepository
	settings   *stubSettingsService

	validate *ValidateExpenseUseCase
	create   *CreateExpenseUseCase
	update   *UpdateExpenseUseCase
	delete   *DeleteExpenseUseCase
	submit   *SubmitExpenseUseCase
	approve  *ApproveExpenseUseCase
	reject   *RejectExpenseUseCase
	markPaid *MarkPaidUseCase

	travel *entity.Category
	meals  *entity.Category

	employee uuid.UUID
	manager  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		expenses:   memory.NewExpenseRepository(),
		categories: memory.NewCategoryRepository(),
		auditLogs:  memory.NewAuditLogRepository(),
		settings:   newStubSettingsService(),
		employee:   uuid.New(),
		manager:    uuid.New(),
	}

	f.travel = entity.NewCategory("Travel", "Business travel", "airplane",
		decimal.NewFromInt(5000), decimal.NewFromInt(15000))
	f.meals = entity.NewCategory("Meals", "Client meals", "cup-hot",
		decimal.NewFromInt(500), decimal.NewFromInt(2000))
	for _, c := range []*entity.Category{f.travel, f.meals} {
		if err := f.categories.Create(ctx, c); err != nil {
			t.Fatalf("failed to create category %s: %v", c.Name, err)
		}
	}

	f.validate = NewValidateExpenseUseCase(f.expenses, f.categories, f.settings)
	f.create = NewCreateExpenseUseCase(f.expenses, f.auditLogs, f.validate)
	f.update = NewUpdateExpenseUseCase(f.expenses, f.auditLogs, f.validate)
	f.delete = NewDeleteExpenseUseCase(f.expenses, f.auditLogs)
	f.submit = NewSubmitExpenseUseCase(f.expenses, f.auditLogs, f.settings)
	f.approve = NewApproveExpenseUseCase(f.expenses, f.auditLogs)
	f.reject = NewRejectExpenseUseCase(f.expenses, f.auditLogs)
	f.markPaid = NewMarkPaidUseCase(f.expenses, f.auditLogs)

	return f
}

// createDraft stores a draft expense through the create use case.
func (f *fixture) createDraft(t *testing.T, userID uuid.UUID, amount float64, categoryID uuid.UUID) *ExpenseOutput {
	t.Helper()
	out, err := f.create.Execute(context.Background(), CreateExpenseInput{
		UserID:      userID,
		Title:       "Test expense",
		Description: "Created by test",
		Amount:      decimal.NewFromFloat(amount),
		Currency:    "USD",
		CategoryID:  categoryID,
		ExpenseDate: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to create draft expense: %v", err)
	}
	return out.Expense
}

// submitExpense moves a draft into submitted through the submit use case.
func (f *fixture) submitExpense(t *testing.T, expenseID, actorID uuid.UUID) *ExpenseOutput {
	t.Helper()
	out, err := f.submit.Execute(context.Background(), SubmitExpenseInput{
		ExpenseID: expenseID,
		ActorID:   actorID,
	})
	if err != nil {
		t.Fatalf("failed to submit expense: %v", err)
	}
	return out.Expense
}

// expectExpenseError fails the test unless err is an ExpenseError carrying
// the wanted code.
func expectExpenseError(t *testing.T, err error, code domainerror.ExpenseErrorCode) *domainerror.ExpenseError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected expense error with code %s, got nil", code)
	}
	var expErr *domainerror.ExpenseError
	if !errors.As(err, &expErr) {
		t.Fatalf("expected *ExpenseError, got %T: %v", err, err)
	}
	if expErr.Code != code {
		t.Fatalf("expected error code %s, got %s (%s)", code, expErr.Code, expErr.Message)
	}
	return expErr
}

// history returns the audit entries for one expense, newest first.
func (f *fixture) history(t *testing.T, expenseID uuid.UUID) []*entity.AuditLog {
	t.Helper()
	entries, err := f.auditLogs.FindByEntity(context.Background(), "Expense", expenseID)
	if err != nil {
		t.Fatalf("failed to load audit history: %v", err)
	}
	return entries
}
