package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Barcode-stock-api/internal/application/ledger"
	"github.com/jhoicas/Barcode-stock-api/internal/application/reports"
	"github.com/jhoicas/Barcode-stock-api/internal/application/usecase"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/entity"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Barcode-stock-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: el router completo contra los casos de uso reales, sin BD.
// ──────────────────────────────────────────────────────────────────────────────

type stubStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

type stubProductRepo struct{ s *stubStore }

func (r *stubProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *stubProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubProductRepo) GetForUpdateByID(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *stubProductRepo) GetForUpdateByBarcode(barcode string) (*entity.Product, error) {
	return r.GetByBarcode(barcode)
}

func (r *stubProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) UpdateStock(productID string, stock int64) error {
	if p, ok := r.s.products[productID]; ok {
		p.Stock = stock
	}
	return nil
}

func (r *stubProductRepo) List(string, int, int) ([]repository.ProductWithCategory, error) {
	return nil, nil
}

func (r *stubProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type stubMovementRepo struct{ s *stubStore }

func (r *stubMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *stubMovementRepo) List(limit, offset int) ([]repository.MovementWithProduct, error) {
	out := make([]repository.MovementWithProduct, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		out = append(out, repository.MovementWithProduct{Movement: *m})
	}
	return out, nil
}

func (r *stubMovementRepo) ListByProduct(productID string, limit, offset int) ([]repository.MovementWithProduct, error) {
	var out []repository.MovementWithProduct
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, repository.MovementWithProduct{Movement: *m})
		}
	}
	return out, nil
}

// stubTxRunner serializa con un mutex y restaura el estado si fn falla,
// emulando el Commit/Rollback del TxRunner real.
type stubTxRunner struct{ s *stubStore }

func (r *stubTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := make(map[string]entity.Product, len(r.s.products))
	for id, p := range r.s.products {
		snapshot[id] = *p
	}
	nMovs := len(r.s.movements)

	if err := fn(&stubMovementRepo{s: r.s}, &stubProductRepo{s: r.s}); err != nil {
		restored := make(map[string]*entity.Product, len(snapshot))
		for id, p := range snapshot {
			cp := p
			restored[id] = &cp
		}
		r.s.products = restored
		r.s.movements = r.s.movements[:nMovs]
		return err
	}
	return nil
}

type stubCategoryRepo struct{}

func (stubCategoryRepo) Create(*entity.Category) error                 { return nil }
func (stubCategoryRepo) GetByID(string) (*entity.Category, error)      { return nil, nil }
func (stubCategoryRepo) GetByName(string) (*entity.Category, error)    { return nil, nil }
func (stubCategoryRepo) List() ([]repository.CategoryWithCount, error) { return nil, nil }
func (stubCategoryRepo) Update(*entity.Category) error                 { return nil }
func (stubCategoryRepo) Delete(string) error                           { return nil }
func (stubCategoryRepo) CountProducts(string) (int64, error)           { return 0, nil }

type stubReportRepo struct{}

func (stubReportRepo) CountProducts(context.Context) (int64, error) { return 0, nil }
func (stubReportRepo) CountLowStock(context.Context) (int64, error) { return 0, nil }
func (stubReportRepo) TotalStockValue(context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (stubReportRepo) CountCategories(context.Context) (int64, error) { return 0, nil }

func buildTestApp(products ...*entity.Product) (*fiber.App, *stubStore) {
	store := &stubStore{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		store.products[p.ID] = &cp
	}
	productRepo := &stubProductRepo{s: store}
	movementRepo := &stubMovementRepo{s: store}
	runner := &stubTxRunner{s: store}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(productRepo, stubCategoryRepo{}, runner),
		CategoryUC:  usecase.NewCategoryUseCase(stubCategoryRepo{}),
		MovementUC:  usecase.NewMovementUseCase(movementRepo),
		StockLedger: ledger.NewStockLedgerUseCase(runner),
		DashboardUC: reports.NewDashboardUseCase(stubReportRepo{}),
	})
	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSetStock_PorBarcode(t *testing.T) {
	app, store := buildTestApp(&entity.Product{ID: "p1", Barcode: "750100001", Name: "Café", Stock: 10})

	resp := postJSON(t, app, "/api/stock/set", fiber.Map{"barcode": "750100001", "new_stock": 3})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(10), body["stock_before"])
	assert.Equal(t, float64(3), body["stock_after"])
	assert.Equal(t, float64(-7), body["delta"])
	assert.Equal(t, int64(3), store.products["p1"].Stock)
}

func TestSetStock_NegativoEs400(t *testing.T) {
	app, store := buildTestApp(&entity.Product{ID: "p1", Barcode: "750100001", Name: "Café", Stock: 10})

	resp := postJSON(t, app, "/api/stock/set", fiber.Map{"barcode": "750100001", "new_stock": -1})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeBody(t, resp)["code"])
	assert.Equal(t, int64(10), store.products["p1"].Stock, "una validación fallida no debe mutar stock")
}

func TestAdjustStock_SalidaOk(t *testing.T) {
	app, store := buildTestApp(&entity.Product{ID: "p1", Barcode: "750100001", Name: "Café", Stock: 10})

	resp := postJSON(t, app, "/api/stock/adjust", fiber.Map{
		"product_id": "p1", "quantity": 4, "direction": "out",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(6), body["stock_after"])
	assert.Equal(t, float64(-4), body["delta"])
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementKindOut, store.movements[0].Kind)
}

func TestAdjustStock_InsuficienteEs409(t *testing.T) {
	app, store := buildTestApp(&entity.Product{ID: "p1", Barcode: "750100001", Name: "Café", Stock: 3})

	resp := postJSON(t, app, "/api/stock/adjust", fiber.Map{
		"product_id": "p1", "quantity": 5, "direction": "out",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeBody(t, resp)["code"])
	assert.Equal(t, int64(3), store.products["p1"].Stock)
	assert.Empty(t, store.movements)
}

func TestAdjustStock_ProductoInexistenteEs404(t *testing.T) {
	app, _ := buildTestApp()

	resp := postJSON(t, app, "/api/stock/adjust", fiber.Map{
		"product_id": "no-existe", "quantity": 1, "direction": "in",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, resp)["code"])
}

func TestListMovements_DeUnProducto(t *testing.T) {
	app, _ := buildTestApp(&entity.Product{ID: "p1", Barcode: "750100001", Name: "Café", Stock: 0})

	for _, qty := range []int{5, 7} {
		resp := postJSON(t, app, "/api/stock/adjust", fiber.Map{
			"product_id": "p1", "quantity": qty, "direction": "in",
		})
		resp.Body.Close()
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stock/movements/p1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	items, ok := body["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}
