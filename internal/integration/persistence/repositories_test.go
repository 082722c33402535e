package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
	"github.com/expense-claims/backend/internal/integration/persistence/model"
)

// newTestDB opens a private in-memory SQLite database and migrates the
// schema into it. Each test gets its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.CategoryModel{},
		&model.ExpenseModel{},
		&model.AuditLogModel{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func newDraft(userID, categoryID uuid.UUID, title string, amount string, date time.Time) *entity.Expense {
	value, _ := decimal.NewFromString(amount)
	return entity.NewExpense(userID, title, "", value, "USD", categoryID, date)
}

func TestExpenseRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	categoryID := uuid.New()
	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	t.Run("round trips an expense", func(t *testing.T) {
		repo := NewExpenseRepository(newTestDB(t))
		draft := newDraft(userID, categoryID, "Flight to Seattle", "450.00", date)

		if err := repo.Create(ctx, draft); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		found, err := repo.FindByID(ctx, draft.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.Title != "Flight to Seattle" {
			t.Errorf("expected title %q, got %q", "Flight to Seattle", found.Title)
		}
		if !found.Amount.Equal(draft.Amount) {
			t.Errorf("expected amount %s, got %s", draft.Amount, found.Amount)
		}
		if found.Status != entity.ExpenseStatusDraft {
			t.Errorf("expected status draft, got %s", found.Status)
		}
	})

	t.Run("missing expense yields not found", func(t *testing.T) {
		repo := NewExpenseRepository(newTestDB(t))
		if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, domainerror.ErrExpenseNotFound) {
			t.Errorf("expected ErrExpenseNotFound, got %v", err)
		}
	})

	t.Run("update persists lifecycle fields", func(t *testing.T) {
		repo := NewExpenseRepository(newTestDB(t))
		draft := newDraft(userID, categoryID, "Hotel night", "220.00", date)
		if err := repo.Create(ctx, draft); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		now := time.Now().UTC()
		draft.Status = entity.ExpenseStatusSubmitted
		draft.SubmittedAt = &now
		if err := repo.Update(ctx, draft); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found, err := repo.FindByID(ctx, draft.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.Status != entity.ExpenseStatusSubmitted {
			t.Errorf("expected status submitted, got %s", found.Status)
		}
		if found.SubmittedAt == nil {
			t.Error("expected SubmittedAt to be set")
		}
	})

	t.Run("update of a missing expense fails", func(t *testing.T) {
		repo := NewExpenseRepository(newTestDB(t))
		ghost := newDraft(userID, categoryID, "Ghost", "10.00", date)
		if err := repo.Update(ctx, ghost); !errors.Is(err, domainerror.ErrExpenseNotFound) {
			t.Errorf("expected ErrExpenseNotFound, got %v", err)
		}
	})

	t.Run("delete reports removal", func(t *testing.T) {
		repo := NewExpenseRepository(newTestDB(t))
		draft := newDraft(userID, categoryID, "Mistake", "15.00", date)
		if err := repo.Create(ctx, draft); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		removed, err := repo.Delete(ctx, draft.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !removed {
			t.Error("expected delete to report removal")
		}
		removed, err = repo.Delete(ctx, draft.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if removed {
			t.Error("expected second delete to report nothing removed")
		}
	})

	t.Run("filter narrows by status and search term", func(t *testing.T) {
		repo := NewExpenseRepository(newTestDB(t))
		first := newDraft(userID, categoryID, "Team lunch downtown", "85.00", date)
		second := newDraft(userID, categoryID, "Parking garage", "12.00", date.AddDate(0, 0, 1))
		second.Status = entity.ExpenseStatusSubmitted
		for _, e := range []*entity.Expense{first, second} {
			if err := repo.Create(ctx, e); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		submitted := entity.ExpenseStatusSubmitted
		page, err := repo.FindByFilter(ctx, adapter.ExpenseFilter{Status: &submitted}, adapter.ExpensePagination{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Items) != 1 || page.Items[0].Title != "Parking garage" {
			t.Fatalf("expected only the submitted expense, got %d items", len(page.Items))
		}

		page, err = repo.FindByFilter(ctx, adapter.ExpenseFilter{SearchTerm: "LUNCH"}, adapter.ExpensePagination{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Items) != 1 || page.Items[0].Title != "Team lunch downtown" {
			t.Fatalf("expected the search to match one expense, got %d items", len(page.Items))
		}
	})

	t.Run("filter pages and counts the full set", func(t *testing.T) {
		repo := NewExpenseRepository(newTestDB(t))
		for i := 0; i < 5; i++ {
			e := newDraft(userID, categoryID, "Notebook", "10.00", date.AddDate(0, 0, i))
			if err := repo.Create(ctx, e); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		page, err := repo.FindByFilter(ctx, adapter.ExpenseFilter{}, adapter.ExpensePagination{Page: 2, PageSize: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Items) != 2 {
			t.Errorf("expected 2 items on page 2, got %d", len(page.Items))
		}
		if page.TotalCount != 5 {
			t.Errorf("expected total count 5, got %d", page.TotalCount)
		}
		if page.TotalPages() != 3 {
			t.Errorf("expected 3 pages, got %d", page.TotalPages())
		}
	})

	t.Run("date range scopes to the owner", func(t *testing.T) {
		repo := NewExpenseRepository(newTestDB(t))
		other := uuid.New()
		mine := newDraft(userID, categoryID, "Mine", "30.00", date)
		theirs := newDraft(other, categoryID, "Theirs", "40.00", date)
		for _, e := range []*entity.Expense{mine, theirs} {
			if err := repo.Create(ctx, e); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		start := date.AddDate(0, 0, -1)
		end := date.AddDate(0, 0, 1)
		found, err := repo.FindByDateRange(ctx, start, end, &userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(found) != 1 || found[0].Title != "Mine" {
			t.Fatalf("expected only the owner's expense, got %d items", len(found))
		}

		all, err := repo.FindByDateRange(ctx, start, end, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("expected the company-wide range to hold 2 expenses, got %d", len(all))
		}
	})
}

func TestCategoryRepository_SQLite(t *testing.T) {
	ctx := context.Background()

	t.Run("finds by name ignoring case", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		travel := entity.NewCategory("Travel", "", "airplane", decimal.NewFromInt(5000), decimal.NewFromInt(15000))
		if err := repo.Create(ctx, travel); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found, err := repo.FindByName(ctx, "tRaVeL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.ID != travel.ID {
			t.Errorf("expected category %s, got %s", travel.ID, found.ID)
		}

		if _, err := repo.FindByName(ctx, "Lodging"); !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("active listing excludes retired categories", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		active := entity.NewCategory("Travel", "", "airplane", decimal.NewFromInt(5000), decimal.NewFromInt(15000))
		retired := entity.NewCategory("Fax machines", "", "printer", decimal.NewFromInt(100), decimal.NewFromInt(200))
		retired.IsActive = false
		for _, c := range []*entity.Category{active, retired} {
			if err := repo.Create(ctx, c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		activeSet, err := repo.FindActive(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(activeSet) != 1 || activeSet[0].Name != "Travel" {
			t.Fatalf("expected only the active category, got %d items", len(activeSet))
		}

		all, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("expected the admin listing to hold 2 categories, got %d", len(all))
		}
	})

	t.Run("update of a missing category fails", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		ghost := entity.NewCategory("Ghost", "", "", decimal.NewFromInt(1), decimal.NewFromInt(2))
		if err := repo.Update(ctx, ghost); !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})
}

func TestAuditLogRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("entity trail comes back newest first", func(t *testing.T) {
		repo := NewAuditLogRepository(newTestDB(t))
		expenseID := uuid.New()

		created := entity.NewAuditLog("Expense", expenseID, entity.AuditActionCreated, actorID)
		created.Timestamp = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
		submitted := entity.NewAuditLog("Expense", expenseID, entity.AuditActionSubmitted, actorID)
		submitted.Timestamp = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
		unrelated := entity.NewAuditLog("Expense", uuid.New(), entity.AuditActionCreated, actorID)
		unrelated.Timestamp = time.Date(2025, time.June, 3, 9, 0, 0, 0, time.UTC)
		for _, e := range []*entity.AuditLog{created, submitted, unrelated} {
			if err := repo.Append(ctx, e); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		trail, err := repo.FindByEntity(ctx, "Expense", expenseID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(trail) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(trail))
		}
		if trail[0].Action != entity.AuditActionSubmitted || trail[1].Action != entity.AuditActionCreated {
			t.Errorf("expected newest-first order, got %s then %s", trail[0].Action, trail[1].Action)
		}
	})

	t.Run("recent trail honors the limit", func(t *testing.T) {
		repo := NewAuditLogRepository(newTestDB(t))
		for i := 0; i < 3; i++ {
			e := entity.NewAuditLog("Expense", uuid.New(), entity.AuditActionCreated, actorID)
			e.Timestamp = time.Date(2025, time.June, 1+i, 9, 0, 0, 0, time.UTC)
			if err := repo.Append(ctx, e); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		recent, err := repo.FindRecent(ctx, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(recent) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(recent))
		}
		if !recent[0].Timestamp.After(recent[1].Timestamp) {
			t.Error("expected newest-first order")
		}
	})
}

func TestUserRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)

	users := []*entity.User{
		entity.NewUser("john.doe", "John Doe", "john.doe@example.com", entity.UserRoleEmployee, "Engineering"),
		entity.NewUser("alice.manager", "Alice Manager", "alice.manager@example.com", entity.UserRoleManager, "Engineering"),
	}
	for _, u := range users {
		if err := db.WithContext(ctx).Create(model.UserFromEntity(u)).Error; err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	t.Run("finds by username", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "john.doe")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.DisplayName != "John Doe" {
			t.Errorf("expected display name %q, got %q", "John Doe", found.DisplayName)
		}
	})

	t.Run("missing user yields not found", func(t *testing.T) {
		if _, err := repo.FindByUsername(ctx, "nobody.here"); !errors.Is(err, domainerror.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("lists users by display name", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 users, got %d", len(all))
		}
		if all[0].Username != "alice.manager" {
			t.Errorf("expected alice.manager first, got %s", all[0].Username)
		}
	})
}
