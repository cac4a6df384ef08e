package services

import (
	"testing"

	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/testutil"
)

func TestEffectiveValue(t *testing.T) {
	marked := models.Investment{InvestedAmount: 10000, CurrentValue: 12000}
	if got := EffectiveValue(marked); got != 12000 {
		t.Errorf("expected marked value 12000, got %d", got)
	}

	unmarked := models.Investment{InvestedAmount: 10000}
	if got := EffectiveValue(unmarked); got != 10000 {
		t.Errorf("expected fallback to invested 10000, got %d", got)
	}
}

func TestCreateInvestment(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db)
		user := testutil.CreateTestUser(t, db)

		investment, err := svc.CreateInvestment(user.ID, InvestmentFields{
			Name:           "Tesouro Selic",
			Type:           models.InvestmentTypeFixedIncome,
			InvestedAmount: 500000,
		})
		testutil.AssertNoError(t, err)

		if investment.ID == "" {
			t.Fatal("expected non-empty investment ID")
		}
	})

	t.Run("invalid_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateInvestment(user.ID, InvestmentFields{
			Name: "Zero",
			Type: models.InvestmentTypeStocks,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetInvestmentTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewInvestmentService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestInvestment(t, db, user.ID, 100000, 110000)
	testutil.CreateTestInvestment(t, db, user.ID, 50000, 0) // falls back to invested

	totals, err := svc.GetTotals(user.ID)
	testutil.AssertNoError(t, err)

	if totals.Invested != 150000 {
		t.Errorf("expected invested 150000, got %d", totals.Invested)
	}
	if totals.Current != 160000 {
		t.Errorf("expected current 160000, got %d", totals.Current)
	}
	if totals.GainLoss != 10000 {
		t.Errorf("expected gain 10000, got %d", totals.GainLoss)
	}
}

func TestUpdateCurrentValue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewInvestmentService(db)
	user := testutil.CreateTestUser(t, db)
	investment := testutil.CreateTestInvestment(t, db, user.ID, 100000, 0)

	updated, err := svc.UpdateCurrentValue(user.ID, investment.ID, 125000)
	testutil.AssertNoError(t, err)
	if updated.CurrentValue != 125000 {
		t.Errorf("expected current value 125000, got %d", updated.CurrentValue)
	}

	_, err = svc.UpdateCurrentValue(user.ID, "00000000-0000-0000-0000-000000000000", 1)
	testutil.AssertAppError(t, err, "INVESTMENT_NOT_FOUND")
}
