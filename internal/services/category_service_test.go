package services

import (
	"testing"

	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/pagination"
	"github.com/epicsistemas10/meubolso/internal/testutil"
)

func TestSeedDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)

	err := svc.SeedDefaults(db, user.ID)
	testutil.AssertNoError(t, err)

	var income, expense int64
	db.Model(&models.Category{}).Where("user_id = ? AND type = ?", user.ID, models.CategoryTypeIncome).Count(&income)
	db.Model(&models.Category{}).Where("user_id = ? AND type = ?", user.ID, models.CategoryTypeExpense).Count(&expense)
	if income != 4 {
		t.Errorf("expected 4 income categories, got %d", income)
	}
	if expense != 8 {
		t.Errorf("expected 8 expense categories, got %d", expense)
	}
}

func TestGetUserCategories(t *testing.T) {
	t.Run("filter_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		expense := models.CategoryTypeExpense
		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserCategories(user.ID, &expense, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 expense categories, got %d", result.TotalItems)
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		err := svc.DeleteCategory(user.ID, cat.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("in_use_by_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		tx := testutil.CreateTestTransaction(t, db, user.ID, &account.ID, models.TransactionTypeExpense, 1000)
		db.Model(tx).Update("category_id", cat.ID)

		err := svc.DeleteCategory(user.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})
}
