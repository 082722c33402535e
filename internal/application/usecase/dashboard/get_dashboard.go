// Package dashboard contains dashboard aggregation use cases.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
)

// GetDashboardInput represents the input for the dashboard aggregation.
// A nil UserID produces the company-wide dashboard.
type GetDashboardInput struct {
	Filter TimeFilter
	UserID *uuid.UUID
}

// KPIs summarizes the current calendar month plus the approval queue,
// independent of the requested window.
type KPIs struct {
	SubmittedThisMonth       int
	ApprovedThisMonth        int
	RejectedThisMonth        int
	PendingApproval          int
	TotalAmountThisMonth     decimal.Decimal
	AverageApprovalTimeHours float64
}

// MonthlyBucket aggregates one calendar month of the window.
type MonthlyBucket struct {
	Year           int
	Month          time.Month
	MonthName      string
	Count          int
	TotalAmount    decimal.Decimal
	ApprovedAmount decimal.Decimal
	RejectedAmount decimal.Decimal
	PendingAmount  decimal.Decimal
}

// CategoryBucket aggregates window expenses for one category.
type CategoryBucket struct {
	CategoryID   uuid.UUID
	CategoryName string
	CategoryIcon string
	Count        int
	TotalAmount  decimal.Decimal
	Percentage   float64
}

// StatusBucket aggregates window expenses for one status.
type StatusBucket struct {
	Status     entity.ExpenseStatus
	Count      int
	Percentage float64
}

// GetDashboardOutput represents the aggregated reporting view.
type GetDashboardOutput struct {
	IsPersonal      bool
	UserID          *uuid.UUID
	UserDisplayName string
	Filter          TimeFilter
	WindowStart     time.Time
	WindowEnd       time.Time
	KPIs            KPIs
	MonthlyBuckets  []MonthlyBucket
	CategoryBuckets []CategoryBucket
	StatusBuckets   []StatusBucket
	AvailableUsers  []*entity.User
}

// GetDashboardUseCase computes the multi-dimensional reporting view. It is a
// pure read: the snapshot is fetched once and all buckets are reductions
// over it, so repeated calls on an unchanged store yield identical results.
type GetDashboardUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	userRepo     adapter.UserRepository

	// now is swappable for tests.
	now func() time.Time
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source. Used by tests.
func (uc *GetDashboardUseCase) WithClock(now func() time.Time) *GetDashboardUseCase {
	uc.now = now
	return uc
}

// Execute aggregates the window into KPIs and buckets.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	now := uc.now()
	windowStart, windowEnd := WindowFor(input.Filter, now)

	var (
		expenses   []*entity.Expense
		categories []*entity.Category
		users      []*entity.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = uc.expenseRepo.FindByDateRange(gctx, windowStart, windowEnd, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = uc.categoryRepo.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = uc.userRepo.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	categoryByID := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	out := &GetDashboardOutput{
		IsPersonal:      input.UserID != nil,
		UserID:          input.UserID,
		Filter:          input.Filter,
		WindowStart:     windowStart,
		WindowEnd:       windowEnd,
		KPIs:            computeKPIs(expenses, now),
		MonthlyBuckets:  monthlyBuckets(expenses, windowStart, windowEnd),
		CategoryBuckets: categoryBuckets(expenses, categoryByID),
		StatusBuckets:   statusBuckets(expenses),
		AvailableUsers:  users,
	}

	if input.UserID != nil {
		for _, u := range users {
			if u.ID == *input.UserID {
				out.UserDisplayName = u.DisplayName
				break
			}
		}
	}

	return out, nil
}

// computeKPIs reduces the snapshot into the headline numbers. All counts and
// sums except PendingApproval are scoped to the current calendar month.
func computeKPIs(expenses []*entity.Expense, now time.Time) KPIs {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	kpis := KPIs{TotalAmountThisMonth: decimal.Zero}

	approvalHours := 0.0
	approvalCount := 0

	for _, e := range expenses {
		if e.SubmittedAt != nil && e.ApprovedAt != nil {
			approvalHours += e.ApprovedAt.Sub(*e.SubmittedAt).Hours()
			approvalCount++
		}
		if e.Status == entity.ExpenseStatusSubmitted {
			kpis.PendingApproval++
		}

		if e.ExpenseDate.Before(monthStart) || e.ExpenseDate.After(monthEnd) {
			continue
		}
		switch e.Status {
		case entity.ExpenseStatusSubmitted:
			kpis.SubmittedThisMonth++
		case entity.ExpenseStatusApproved, entity.ExpenseStatusPaid:
			kpis.ApprovedThisMonth++
		case entity.ExpenseStatusRejected:
			kpis.RejectedThisMonth++
		}
		if e.Status != entity.ExpenseStatusRejected {
			kpis.TotalAmountThisMonth = kpis.TotalAmountThisMonth.Add(e.Amount)
		}
	}

	if approvalCount > 0 {
		kpis.AverageApprovalTimeHours = approvalHours / float64(approvalCount)
	}
	return kpis
}

// monthlyBuckets produces one bucket per calendar month from window start to
// window end, zero-filled for months without expenses.
func monthlyBuckets(expenses []*entity.Expense, windowStart, windowEnd time.Time) []MonthlyBucket {
	type key struct {
		year  int
		month time.Month
	}

	byMonth := make(map[key][]*entity.Expense)
	for _, e := range expenses {
		k := key{e.ExpenseDate.Year(), e.ExpenseDate.Month()}
		byMonth[k] = append(byMonth[k], e)
	}

	var buckets []MonthlyBucket
	current := time.Date(windowStart.Year(), windowStart.Month(), 1, 0, 0, 0, 0, windowStart.Location())
	last := time.Date(windowEnd.Year(), windowEnd.Month(), 1, 0, 0, 0, 0, windowEnd.Location())

	for !current.After(last) {
		bucket := MonthlyBucket{
			Year:           current.Year(),
			Month:          current.Month(),
			MonthName:      current.Month().String()[:3],
			TotalAmount:    decimal.Zero,
			ApprovedAmount: decimal.Zero,
			RejectedAmount: decimal.Zero,
			PendingAmount:  decimal.Zero,
		}
		for _, e := range byMonth[key{current.Year(), current.Month()}] {
			bucket.Count++
			bucket.TotalAmount = bucket.TotalAmount.Add(e.Amount)
			switch e.Status {
			case entity.ExpenseStatusApproved, entity.ExpenseStatusPaid:
				bucket.ApprovedAmount = bucket.ApprovedAmount.Add(e.Amount)
			case entity.ExpenseStatusRejected:
				bucket.RejectedAmount = bucket.RejectedAmount.Add(e.Amount)
			case entity.ExpenseStatusDraft, entity.ExpenseStatusSubmitted:
				bucket.PendingAmount = bucket.PendingAmount.Add(e.Amount)
			}
		}
		buckets = append(buckets, bucket)
		current = current.AddDate(0, 1, 0)
	}
	return buckets
}

// categoryBuckets groups window expenses by category, sorted by total
// descending. Percentages are of the window total, rounded to one decimal,
// and 0 when the window total is 0.
func categoryBuckets(expenses []*entity.Expense, categories map[uuid.UUID]*entity.Category) []CategoryBucket {
	windowTotal := decimal.Zero
	for _, e := range expenses {
		windowTotal = windowTotal.Add(e.Amount)
	}

	byCategory := make(map[uuid.UUID]*CategoryBucket)
	for _, e := range expenses {
		bucket, ok := byCategory[e.CategoryID]
		if !ok {
			bucket = &CategoryBucket{
				CategoryID:   e.CategoryID,
				CategoryName: "Unknown",
				CategoryIcon: entity.DefaultCategoryIcon,
				TotalAmount:  decimal.Zero,
			}
			if c := categories[e.CategoryID]; c != nil {
				bucket.CategoryName = c.Name
				bucket.CategoryIcon = c.Icon
			}
			byCategory[e.CategoryID] = bucket
		}
		bucket.Count++
		bucket.TotalAmount = bucket.TotalAmount.Add(e.Amount)
	}

	buckets := make([]CategoryBucket, 0, len(byCategory))
	for _, b := range byCategory {
		if windowTotal.IsPositive() {
			pct := b.TotalAmount.Mul(decimal.NewFromInt(100)).Div(windowTotal)
			b.Percentage, _ = pct.Round(1).Float64()
		}
		buckets = append(buckets, *b)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].TotalAmount.GreaterThan(buckets[j].TotalAmount)
	})
	return buckets
}

// statusBuckets counts window expenses per status, sorted by count
// descending. An empty window uses 1 as the percentage denominator so every
// bucket reports 0% instead of dividing by zero.
func statusBuckets(expenses []*entity.Expense) []StatusBucket {
	total := len(expenses)
	if total == 0 {
		total = 1
	}

	counts := make(map[entity.ExpenseStatus]int)
	for _, e := range expenses {
		counts[e.Status]++
	}

	var buckets []StatusBucket
	for _, status := range entity.AllExpenseStatuses {
		count := counts[status]
		if count == 0 {
			continue
		}
		pct := decimal.NewFromInt(int64(count)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(total)))
		percentage, _ := pct.Round(1).Float64()
		buckets = append(buckets, StatusBucket{
			Status:     status,
			Count:      count,
			Percentage: percentage,
		})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return buckets
}
