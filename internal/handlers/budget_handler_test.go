package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/services"
	"github.com/epicsistemas10/meubolso/internal/validator"
)

// --- shared mocks ---

type mockAuditService struct{}

func (m *mockAuditService) Log(_, _, _, _, _ string, _ map[string]interface{}) {}

type mockDashboardService struct{}

func (m *mockDashboardService) GetNetWorth(_ string) (*services.NetWorthBreakdown, error) {
	return &services.NetWorthBreakdown{}, nil
}

func (m *mockDashboardService) GetSummary(_ string, _, _ int) (*services.DashboardSummary, error) {
	return &services.DashboardSummary{}, nil
}

func (m *mockDashboardService) InvalidateUser(_ string) {}

var (
	_ services.AuditServicer     = (*mockAuditService)(nil)
	_ services.DashboardServicer = (*mockDashboardService)(nil)
)

// --- test helpers ---

const testUserID = "0198a1b2-0000-7000-8000-0000000000aa"

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn  func(userID string, categoryID *string, month, year int, plannedAmount int64) (*models.Budget, error)
	listBudgetsFn   func(userID string, month, year int) ([]services.BudgetView, error)
	getBudgetByIDFn func(userID, budgetID string) (*models.Budget, error)
	updateBudgetFn  func(userID, budgetID string, plannedAmount int64) (*models.Budget, error)
	deleteBudgetFn  func(userID, budgetID string) error
	copyForwardFn   func(userID string, month, year int) ([]models.Budget, error)
}

func (m *mockBudgetService) CreateBudget(userID string, categoryID *string, month, year int, plannedAmount int64) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, categoryID, month, year, plannedAmount)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) ListBudgets(userID string, month, year int) ([]services.BudgetView, error) {
	if m.listBudgetsFn != nil {
		return m.listBudgetsFn(userID, month, year)
	}
	return []services.BudgetView{}, nil
}

func (m *mockBudgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(userID, budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateBudget(userID, budgetID string, plannedAmount int64) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(userID, budgetID, plannedAmount)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) DeleteBudget(userID, budgetID string) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(userID, budgetID)
	}
	return nil
}

func (m *mockBudgetService) CopyForward(userID string, month, year int) ([]models.Budget, error) {
	if m.copyForwardFn != nil {
		return m.copyForwardFn(userID, month, year)
	}
	return []models.Budget{}, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/budgets", handler.CreateBudget)
	auth.GET("/budgets", handler.GetBudgets)
	auth.PUT("/budgets/:id", handler.UpdateBudget)
	auth.DELETE("/budgets/:id", handler.DeleteBudget)
	auth.POST("/budgets/copy-forward", handler.CopyForward)
	return r
}

func newBudgetHandler(svc services.BudgetServicer) *BudgetHandler {
	return NewBudgetHandler(svc, &mockAuditService{}, &mockDashboardService{})
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_ string, categoryID *string, month, year int, plannedAmount int64) (*models.Budget, error) {
				return &models.Budget{
					UserID:        testUserID,
					CategoryID:    categoryID,
					Month:         month,
					Year:          year,
					PlannedAmount: plannedAmount,
				}, nil
			},
		}
		r := setupBudgetRouter(newBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budgets",
			`{"category_id":"0198a1b2-0000-7000-8000-0000000000c1","month":3,"year":2026,"planned_amount":50000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseBody(t, rec)
		budget := result["budget"].(map[string]interface{})
		if budget["planned_amount"].(float64) != 50000 {
			t.Errorf("expected planned_amount 50000, got %v", budget["planned_amount"])
		}
		if budget["month"].(float64) != 3 {
			t.Errorf("expected month 3, got %v", budget["month"])
		}
	})

	t.Run("returns 400 on missing category", func(t *testing.T) {
		r := setupBudgetRouter(newBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "POST", "/budgets", `{"month":3,"year":2026,"planned_amount":50000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseBody(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on month out of range", func(t *testing.T) {
		r := setupBudgetRouter(newBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "POST", "/budgets",
			`{"category_id":"0198a1b2-0000-7000-8000-0000000000c1","month":13,"year":2026,"planned_amount":50000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on zero planned amount", func(t *testing.T) {
		r := setupBudgetRouter(newBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "POST", "/budgets",
			`{"category_id":"0198a1b2-0000-7000-8000-0000000000c1","month":3,"year":2026,"planned_amount":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown category", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_ string, _ *string, _, _ int, _ int64) (*models.Budget, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupBudgetRouter(newBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budgets",
			`{"category_id":"0198a1b2-0000-7000-8000-0000000000ff","month":3,"year":2026,"planned_amount":50000}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseBody(t, rec), "CATEGORY_NOT_FOUND")
	})

	t.Run("returns 409 on duplicate budget", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_ string, _ *string, _, _ int, _ int64) (*models.Budget, error) {
				return nil, apperrors.ErrDuplicateBudget
			},
		}
		r := setupBudgetRouter(newBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budgets",
			`{"category_id":"0198a1b2-0000-7000-8000-0000000000c1","month":3,"year":2026,"planned_amount":50000}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseBody(t, rec), "DUPLICATE_BUDGET")
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := newBudgetHandler(&mockBudgetService{})
		r := gin.New()
		r.POST("/budgets", handler.CreateBudget)

		rec := doRequest(r, "POST", "/budgets",
			`{"category_id":"0198a1b2-0000-7000-8000-0000000000c1","month":3,"year":2026,"planned_amount":50000}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	t.Run("returns 200 with budgets", func(t *testing.T) {
		svc := &mockBudgetService{
			listBudgetsFn: func(_ string, month, year int) ([]services.BudgetView, error) {
				return []services.BudgetView{
					{Budget: models.Budget{Month: month, Year: year, PlannedAmount: 50000, SpentAmount: 25000}, Progress: 50, Remaining: 25000, Status: services.BudgetStatusInProgress},
				}, nil
			},
		}
		r := setupBudgetRouter(newBudgetHandler(svc))

		rec := doRequest(r, "GET", "/budgets?month=3&year=2026", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseBody(t, rec)
		budgets := result["budgets"].([]interface{})
		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(budgets))
		}
		first := budgets[0].(map[string]interface{})
		if first["progress"].(float64) != 50 {
			t.Errorf("expected progress 50, got %v", first["progress"])
		}
	})

	t.Run("returns 400 on invalid month query", func(t *testing.T) {
		r := setupBudgetRouter(newBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "GET", "/budgets?month=13", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseBody(t, rec), "INVALID_INPUT")
	})
}

func TestBudgetHandler_UpdateBudget(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			updateBudgetFn: func(_, budgetID string, plannedAmount int64) (*models.Budget, error) {
				b := &models.Budget{PlannedAmount: plannedAmount}
				b.ID = budgetID
				return b, nil
			},
		}
		r := setupBudgetRouter(newBudgetHandler(svc))

		rec := doRequest(r, "PUT", "/budgets/b1", `{"planned_amount":75000}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		budget := parseBody(t, rec)["budget"].(map[string]interface{})
		if budget["planned_amount"].(float64) != 75000 {
			t.Errorf("expected planned_amount 75000, got %v", budget["planned_amount"])
		}
	})

	t.Run("returns 400 on missing planned amount", func(t *testing.T) {
		r := setupBudgetRouter(newBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "PUT", "/budgets/b1", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseBody(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockBudgetService{
			updateBudgetFn: func(_, _ string, _ int64) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		r := setupBudgetRouter(newBudgetHandler(svc))

		rec := doRequest(r, "PUT", "/budgets/missing", `{"planned_amount":75000}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseBody(t, rec), "BUDGET_NOT_FOUND")
	})
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		r := setupBudgetRouter(newBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "DELETE", "/budgets/b1", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockBudgetService{
			deleteBudgetFn: func(_, _ string) error {
				return apperrors.ErrBudgetNotFound
			},
		}
		r := setupBudgetRouter(newBudgetHandler(svc))

		rec := doRequest(r, "DELETE", "/budgets/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseBody(t, rec), "BUDGET_NOT_FOUND")
	})
}

func TestBudgetHandler_CopyForward(t *testing.T) {
	t.Run("returns 201 with created budgets", func(t *testing.T) {
		svc := &mockBudgetService{
			copyForwardFn: func(_ string, month, year int) ([]models.Budget, error) {
				return []models.Budget{
					{Month: month, Year: year, PlannedAmount: 50000},
					{Month: month, Year: year, PlannedAmount: 30000},
				}, nil
			},
		}
		r := setupBudgetRouter(newBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budgets/copy-forward", `{"month":4,"year":2026}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		budgets := parseBody(t, rec)["budgets"].([]interface{})
		if len(budgets) != 2 {
			t.Errorf("expected 2 budgets, got %d", len(budgets))
		}
	})

	t.Run("returns 404 when previous month is empty", func(t *testing.T) {
		svc := &mockBudgetService{
			copyForwardFn: func(_ string, _, _ int) ([]models.Budget, error) {
				return nil, apperrors.ErrNoPreviousBudgets
			},
		}
		r := setupBudgetRouter(newBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budgets/copy-forward", `{"month":4,"year":2026}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseBody(t, rec), "NO_PREVIOUS_BUDGETS")
	})

	t.Run("returns 400 on missing month", func(t *testing.T) {
		r := setupBudgetRouter(newBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "POST", "/budgets/copy-forward", `{"year":2026}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
