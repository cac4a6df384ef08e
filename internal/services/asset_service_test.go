package services

import (
	"testing"

	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/testutil"
)

func TestCreateAsset(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)

		asset, err := svc.CreateAsset(user.ID, AssetFields{
			Name:           "Fiat Argo",
			Type:           models.AssetTypeVehicle,
			EstimatedValue: 7500000,
		})
		testutil.AssertNoError(t, err)

		if asset.ID == "" {
			t.Fatal("expected non-empty asset ID")
		}
	})

	t.Run("invalid_value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAsset(user.ID, AssetFields{
			Name: "Sem valor",
			Type: models.AssetTypeOther,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSellAsset(t *testing.T) {
	t.Run("removes_asset_and_records_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)
		asset := testutil.CreateTestAsset(t, db, user.ID, 7500000)

		tx, err := svc.SellAsset(user.ID, asset.ID, 7000000)
		testutil.AssertNoError(t, err)

		if tx.Type != models.TransactionTypeIncome {
			t.Errorf("expected income transaction, got %s", tx.Type)
		}
		if tx.Amount != 7000000 {
			t.Errorf("expected amount 7000000, got %d", tx.Amount)
		}

		_, err = svc.GetAssetByID(user.ID, asset.ID)
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})

	t.Run("invalid_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)
		asset := testutil.CreateTestAsset(t, db, user.ID, 100000)

		_, err := svc.SellAsset(user.ID, asset.ID, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SellAsset(user.ID, "00000000-0000-0000-0000-000000000000", 1000)
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}
