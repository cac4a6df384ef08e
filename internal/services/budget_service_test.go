package services

import (
	"testing"
	"time"

	"github.com/epicsistemas10/meubolso/internal/config"
	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/testutil"
)

func TestBudgetProgress(t *testing.T) {
	cases := []struct {
		name    string
		planned int64
		spent   int64
		want    float64
	}{
		{"halfway", 10000, 5000, 50},
		{"exactly_met", 10000, 10000, 100},
		{"overspent_clamped", 10000, 20000, 100},
		{"zero_plan", 0, 5000, 0},
		{"nothing_spent", 10000, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BudgetProgress(tc.planned, tc.spent); got != tc.want {
				t.Errorf("BudgetProgress(%d, %d) = %v, want %v", tc.planned, tc.spent, got, tc.want)
			}
		})
	}
}

func TestClassifyBudget(t *testing.T) {
	if got := ClassifyBudget(10000, 5000); got != BudgetStatusInProgress {
		t.Errorf("under plan should be in_progress, got %s", got)
	}
	if got := ClassifyBudget(10000, 10000); got != BudgetStatusMet {
		t.Errorf("exactly met should be met, got %s", got)
	}
	if got := ClassifyBudget(10000, 10001); got != BudgetStatusExceeded {
		t.Errorf("over plan should be exceeded, got %s", got)
	}
}

func TestPreviousPeriod(t *testing.T) {
	if m, y := PreviousPeriod(3, 2026); m != 2 || y != 2026 {
		t.Errorf("expected 2/2026, got %d/%d", m, y)
	}
	if m, y := PreviousPeriod(1, 2026); m != 12 || y != 2025 {
		t.Errorf("expected 12/2025, got %d/%d", m, y)
	}
}

func TestCreateBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, config.SpentModeStored)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		budget, err := svc.CreateBudget(user.ID, &cat.ID, 3, 2026, 50000)
		testutil.AssertNoError(t, err)

		if budget.ID == "" {
			t.Fatal("expected non-empty budget ID")
		}
		if budget.PlannedAmount != 50000 {
			t.Errorf("expected planned amount 50000, got %d", budget.PlannedAmount)
		}
		if budget.SpentAmount != 0 {
			t.Errorf("expected spent amount 0, got %d", budget.SpentAmount)
		}
	})

	t.Run("duplicate_category_and_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, config.SpentModeStored)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudget(user.ID, &cat.ID, 3, 2026, 50000)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudget(user.ID, &cat.ID, 3, 2026, 70000)
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})

	t.Run("invalid_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, config.SpentModeStored)
		user := testutil.CreateTestUser(t, db)
		bogus := "00000000-0000-0000-0000-000000000000"

		_, err := svc.CreateBudget(user.ID, &bogus, 3, 2026, 50000)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, config.SpentModeStored)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudget(user.ID, &cat.ID, 13, 2026, 50000)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListBudgets(t *testing.T) {
	t.Run("stored_mode_uses_counter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, config.SpentModeStored)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		budget := testutil.CreateTestBudget(t, db, user.ID, &cat.ID, 3, 2026)
		db.Model(budget).Update("spent_amount", 2500)

		views, err := svc.ListBudgets(user.ID, 3, 2026)
		testutil.AssertNoError(t, err)

		if len(views) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(views))
		}
		if views[0].SpentAmount != 2500 {
			t.Errorf("expected spent 2500, got %d", views[0].SpentAmount)
		}
		if views[0].Progress != 25 {
			t.Errorf("expected progress 25, got %v", views[0].Progress)
		}
		if views[0].Remaining != 7500 {
			t.Errorf("expected remaining 7500, got %d", views[0].Remaining)
		}
		if views[0].Status != BudgetStatusInProgress {
			t.Errorf("expected in_progress, got %s", views[0].Status)
		}
	})

	t.Run("live_mode_recomputes_from_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, config.SpentModeLive)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		account := testutil.CreateTestAccount(t, db, user.ID)

		testutil.CreateTestBudget(t, db, user.ID, &cat.ID, 3, 2026)

		date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		tx := testutil.CreateTestTransactionOn(t, db, user.ID, &account.ID, models.TransactionTypeExpense, 4000, date)
		db.Model(tx).Update("category_id", cat.ID)

		// Outside the month, must not count
		outside := testutil.CreateTestTransactionOn(t, db, user.ID, &account.ID, models.TransactionTypeExpense, 9999, date.AddDate(0, 1, 0))
		db.Model(outside).Update("category_id", cat.ID)

		views, err := svc.ListBudgets(user.ID, 3, 2026)
		testutil.AssertNoError(t, err)

		if len(views) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(views))
		}
		if views[0].SpentAmount != 4000 {
			t.Errorf("expected live spent 4000, got %d", views[0].SpentAmount)
		}
	})
}

func TestCopyForward(t *testing.T) {
	t.Run("copies_with_spent_reset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, config.SpentModeStored)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		prev := testutil.CreateTestBudget(t, db, user.ID, &cat.ID, 2, 2026)
		db.Model(prev).Update("spent_amount", 8000)

		copies, err := svc.CopyForward(user.ID, 3, 2026)
		testutil.AssertNoError(t, err)

		if len(copies) != 1 {
			t.Fatalf("expected 1 copied budget, got %d", len(copies))
		}
		if copies[0].Month != 3 || copies[0].Year != 2026 {
			t.Errorf("expected 3/2026, got %d/%d", copies[0].Month, copies[0].Year)
		}
		if copies[0].PlannedAmount != prev.PlannedAmount {
			t.Errorf("expected planned %d, got %d", prev.PlannedAmount, copies[0].PlannedAmount)
		}
		if copies[0].SpentAmount != 0 {
			t.Errorf("expected spent reset to 0, got %d", copies[0].SpentAmount)
		}
	})

	t.Run("january_pulls_from_previous_december", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, config.SpentModeStored)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestBudget(t, db, user.ID, &cat.ID, 12, 2025)

		copies, err := svc.CopyForward(user.ID, 1, 2026)
		testutil.AssertNoError(t, err)
		if len(copies) != 1 {
			t.Fatalf("expected 1 copied budget, got %d", len(copies))
		}
	})

	t.Run("skips_categories_already_budgeted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, config.SpentModeStored)
		user := testutil.CreateTestUser(t, db)
		cat1 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		cat2 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestBudget(t, db, user.ID, &cat1.ID, 2, 2026)
		testutil.CreateTestBudget(t, db, user.ID, &cat2.ID, 2, 2026)
		testutil.CreateTestBudget(t, db, user.ID, &cat1.ID, 3, 2026)

		copies, err := svc.CopyForward(user.ID, 3, 2026)
		testutil.AssertNoError(t, err)

		if len(copies) != 1 {
			t.Fatalf("expected only the unbudgeted category copied, got %d", len(copies))
		}
		if *copies[0].CategoryID != cat2.ID {
			t.Errorf("expected cat2 copied, got %s", *copies[0].CategoryID)
		}
	})

	t.Run("no_previous_budgets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, config.SpentModeStored)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CopyForward(user.ID, 3, 2026)
		testutil.AssertAppError(t, err, "NO_PREVIOUS_BUDGETS")
	})
}
