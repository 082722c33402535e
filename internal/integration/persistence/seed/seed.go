// Package seed provides the demo dataset used to bootstrap empty stores.
// It only talks to the repository interfaces, so it works against both the
// in-memory and the database backends.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
)

// Users returns the built-in demo user directory. The first three users
// are employees, the last two are managers.
func Users() []*entity.User {
	return []*entity.User{
		entity.NewUser("john.doe", "John Doe", "john.doe@example.com", entity.UserRoleEmployee, "Engineering"),
		entity.NewUser("jane.smith", "Jane Smith", "jane.smith@example.com", entity.UserRoleEmployee, "Marketing"),
		entity.NewUser("bob.wilson", "Bob Wilson", "bob.wilson@example.com", entity.UserRoleEmployee, "Sales"),
		entity.NewUser("alice.manager", "Alice Manager", "alice.manager@example.com", entity.UserRoleManager, "Engineering"),
		entity.NewUser("charlie.boss", "Charlie Boss", "charlie.boss@example.com", entity.UserRoleManager, "Operations"),
	}
}

// Categories populates the default category set with its spending limits.
func Categories(ctx context.Context, repo adapter.CategoryRepository) error {
	categories := []*entity.Category{
		entity.NewCategory("Travel",
			"Business travel expenses including flights, hotels, and transportation",
			"airplane", decimal.NewFromInt(5000), decimal.NewFromInt(15000)),
		entity.NewCategory("Meals & Entertainment",
			"Business meals, client entertainment, and team events",
			"cup-hot", decimal.NewFromInt(500), decimal.NewFromInt(2000)),
		entity.NewCategory("Office Supplies",
			"Office supplies, stationery, and small equipment",
			"pencil", decimal.NewFromInt(200), decimal.NewFromInt(500)),
		entity.NewCategory("Software & Subscriptions",
			"Software licenses, SaaS subscriptions, and digital tools",
			"laptop", decimal.NewFromInt(1000), decimal.NewFromInt(3000)),
		entity.NewCategory("Equipment",
			"Hardware, electronics, and office equipment",
			"pc-display", decimal.NewFromInt(3000), decimal.NewFromInt(10000)),
		entity.NewCategory("Training & Education",
			"Conferences, courses, certifications, and books",
			"book", decimal.NewFromInt(2000), decimal.NewFromInt(5000)),
		entity.NewCategory("Other",
			"Miscellaneous business expenses",
			entity.DefaultCategoryIcon, decimal.NewFromInt(500), decimal.NewFromInt(1000)),
	}
	for _, c := range categories {
		if err := repo.Create(ctx, c); err != nil {
			return fmt.Errorf("seeding category %q: %w", c.Name, err)
		}
	}
	return nil
}

// seedExpense describes one demo expense relative to the seed time.
type seedExpense struct {
	title       string
	description string
	amount      string
	category    string
	user        string
	status      entity.ExpenseStatus
	expenseAge  time.Duration
	manager     string
	notes       string
	reason      string
}

// Expenses populates a spread of historical expenses in mixed statuses so
// the dashboard has data to chart. Categories are resolved by name and users
// by username, so it must run after Categories with the Users set.
func Expenses(ctx context.Context, expenseRepo adapter.ExpenseRepository, categoryRepo adapter.CategoryRepository, users []*entity.User) error {
	byUsername := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byUsername[u.Username] = u
	}

	const day = 24 * time.Hour
	samples := []seedExpense{
		{"Flight to Seattle", "Round trip flight for client meeting", "450.00", "Travel",
			"john.doe", entity.ExpenseStatusApproved, 45 * day, "alice.manager", "Approved for Q3 client outreach", ""},
		{"Team Lunch", "Quarterly team building lunch at Italian restaurant", "185.50", "Meals & Entertainment",
			"john.doe", entity.ExpenseStatusPaid, 30 * day, "alice.manager", "", ""},
		{"JetBrains Rider License", "Annual IDE subscription", "299.00", "Software & Subscriptions",
			"john.doe", entity.ExpenseStatusSubmitted, 5 * day, "", "", ""},
		{"Office Supplies", "Notebooks, pens, and sticky notes", "45.99", "Office Supplies",
			"john.doe", entity.ExpenseStatusDraft, 2 * day, "", "", ""},
		{"Marketing Conference", "Digital Marketing Summit registration", "599.00", "Training & Education",
			"jane.smith", entity.ExpenseStatusApproved, 60 * day, "alice.manager", "Pre-approved for professional development budget", ""},
		{"Client Dinner", "Dinner with Acme Corp representatives", "234.75", "Meals & Entertainment",
			"jane.smith", entity.ExpenseStatusSubmitted, 7 * day, "", "", ""},
		{"Adobe Creative Cloud", "Monthly subscription for design work", "54.99", "Software & Subscriptions",
			"jane.smith", entity.ExpenseStatusRejected, 20 * day, "charlie.boss", "", "Duplicate subscription - already covered by company license"},
		{"Hotel Stay - Chicago", "3 nights for trade show", "675.00", "Travel",
			"bob.wilson", entity.ExpenseStatusPaid, 90 * day, "charlie.boss", "", ""},
		{"Wireless Keyboard", "Logitech MX Keys for home office", "119.99", "Equipment",
			"bob.wilson", entity.ExpenseStatusSubmitted, 3 * day, "", "", ""},
		{"Sales Training Course", "Online sales methodology certification", "399.00", "Training & Education",
			"bob.wilson", entity.ExpenseStatusDraft, 1 * day, "", "", ""},
		{"Annual AWS Training", "Cloud certification course", "1200.00", "Training & Education",
			"john.doe", entity.ExpenseStatusPaid, 92 * day, "alice.manager", "", ""},
		{"Monitor Stand", "Ergonomic monitor arm", "89.99", "Equipment",
			"jane.smith", entity.ExpenseStatusPaid, 61 * day, "alice.manager", "", ""},
		{"Taxi Expenses", "Airport transfers during business trip", "156.00", "Travel",
			"bob.wilson", entity.ExpenseStatusApproved, 31 * day, "charlie.boss", "", ""},
		{"Conference Snacks", "Refreshments for internal meetup", "78.50", "Meals & Entertainment",
			"john.doe", entity.ExpenseStatusPaid, 122 * day, "alice.manager", "", ""},
		{"Printer Paper", "A4 paper for office printer", "32.00", "Office Supplies",
			"jane.smith", entity.ExpenseStatusPaid, 153 * day, "charlie.boss", "", ""},
	}

	now := time.Now().UTC()
	for _, s := range samples {
		owner, ok := byUsername[s.user]
		if !ok {
			return fmt.Errorf("seeding expense %q: unknown user %q", s.title, s.user)
		}
		category, err := categoryRepo.FindByName(ctx, s.category)
		if err != nil {
			return fmt.Errorf("seeding expense %q: %w", s.title, err)
		}
		amount, err := decimal.NewFromString(s.amount)
		if err != nil {
			return fmt.Errorf("seeding expense %q: %w", s.title, err)
		}

		expenseDate := now.Add(-s.expenseAge)
		exp := entity.NewExpense(owner.ID, s.title, s.description, amount, "USD", category.ID, expenseDate)
		exp.CreatedAt = expenseDate
		exp.Status = s.status

		var manager *entity.User
		if s.manager != "" {
			manager, ok = byUsername[s.manager]
			if !ok {
				return fmt.Errorf("seeding expense %q: unknown manager %q", s.title, s.manager)
			}
		}

		switch s.status {
		case entity.ExpenseStatusSubmitted:
			exp.SubmittedAt = timePtr(expenseDate.Add(day))
		case entity.ExpenseStatusApproved:
			exp.SubmittedAt = timePtr(expenseDate.Add(day))
			exp.ApprovedAt = timePtr(expenseDate.Add(2 * day))
			exp.ApprovedByID = uuidPtr(manager.ID)
			exp.ApprovalNotes = s.notes
		case entity.ExpenseStatusRejected:
			exp.SubmittedAt = timePtr(expenseDate.Add(day))
			exp.RejectedAt = timePtr(expenseDate.Add(2 * day))
			exp.RejectedByID = uuidPtr(manager.ID)
			exp.RejectionReason = s.reason
		case entity.ExpenseStatusPaid:
			exp.SubmittedAt = timePtr(expenseDate.Add(day))
			exp.ApprovedAt = timePtr(expenseDate.Add(2 * day))
			exp.ApprovedByID = uuidPtr(manager.ID)
			exp.PaidAt = timePtr(expenseDate.Add(5 * day))
			exp.PaidByID = uuidPtr(manager.ID)
		}

		if err := expenseRepo.Create(ctx, exp); err != nil {
			return fmt.Errorf("seeding expense %q: %w", s.title, err)
		}
	}
	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	cp := id
	return &cp
}
