package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Barcode-stock-api/internal/application/dto"
	"github.com/jhoicas/Barcode-stock-api/internal/application/usecase"
	"github.com/jhoicas/Barcode-stock-api/internal/domain"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/entity"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (sin transacciones reales: el fakeTxRunner solo encadena
// los repos; los casos de rollback se cubren en el paquete ledger).
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products   map[string]*entity.Product
	lastSearch string
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.products {
		if existing.Barcode == p.Barcode {
			return domain.ErrDuplicate
		}
	}
	r.products[p.ID] = p
	return nil
}
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }
func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) GetForUpdateByID(id string) (*entity.Product, error) {
	return r.GetByID(id)
}
func (r *fakeProductRepo) GetForUpdateByBarcode(barcode string) (*entity.Product, error) {
	return r.GetByBarcode(barcode)
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateStock(id string, stock int64) error {
	if p, ok := r.products[id]; ok {
		p.Stock = stock
	}
	return nil
}
func (r *fakeProductRepo) List(search string, limit, offset int) ([]repository.ProductWithCategory, error) {
	r.lastSearch = search
	var list []repository.ProductWithCategory
	for _, p := range r.products {
		list = append(list, repository.ProductWithCategory{Product: *p})
	}
	return list, nil
}
func (r *fakeProductRepo) Delete(id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
	productsIn map[string]int64
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: map[string]*entity.Category{}, productsIn: map[string]int64{}}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error { r.categories[c.ID] = c; return nil }
func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.categories[id], nil
}
func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCategoryRepo) List() ([]repository.CategoryWithCount, error) {
	var list []repository.CategoryWithCount
	for _, c := range r.categories {
		list = append(list, repository.CategoryWithCount{Category: *c, ProductCount: r.productsIn[c.ID]})
	}
	return list, nil
}
func (r *fakeCategoryRepo) Update(c *entity.Category) error { r.categories[c.ID] = c; return nil }
func (r *fakeCategoryRepo) Delete(id string) error          { delete(r.categories, id); return nil }
func (r *fakeCategoryRepo) CountProducts(id string) (int64, error) {
	return r.productsIn[id], nil
}

// fakeTxRunner pasa los repos tal cual, sin transacción real.
type fakeTxRunner struct {
	movements   []*entity.StockMovement
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&fakeMovementRepo{r: r}, r.productRepo)
}

type fakeMovementRepo struct{ r *fakeTxRunner }

func (m *fakeMovementRepo) Create(mov *entity.StockMovement) error {
	m.r.movements = append(m.r.movements, mov)
	return nil
}
func (m *fakeMovementRepo) List(int, int) ([]repository.MovementWithProduct, error) {
	return nil, nil
}
func (m *fakeMovementRepo) ListByProduct(string, int, int) ([]repository.MovementWithProduct, error) {
	return nil, nil
}

func newProductUC(products ...*entity.Product) (*usecase.ProductUseCase, *fakeProductRepo, *fakeCategoryRepo, *fakeTxRunner) {
	productRepo := newFakeProductRepo(products...)
	categoryRepo := newFakeCategoryRepo()
	runner := &fakeTxRunner{productRepo: productRepo}
	return usecase.NewProductUseCase(productRepo, categoryRepo, runner), productRepo, categoryRepo, runner
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_ConStockInicialRegistraMovimiento(t *testing.T) {
	uc, repo, _, runner := newProductUC()

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Barcode:      "750100001",
		Name:         "Café molido 500g",
		InitialStock: 12,
		MinStock:     3,
		UnitPrice:    decimal.NewFromFloat(18.50),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), out.Stock)

	stored, _ := repo.GetByBarcode("750100001")
	require.NotNil(t, stored)
	assert.Equal(t, int64(12), stored.Stock)

	require.Len(t, runner.movements, 1, "el alta con stock inicial debe asentar un movimiento")
	mov := runner.movements[0]
	assert.Equal(t, entity.MovementKindIn, mov.Kind)
	assert.Equal(t, int64(12), mov.Quantity)
	assert.Equal(t, int64(0), mov.StockBefore)
	assert.Equal(t, int64(12), mov.StockAfter)
}

func TestProductCreate_SinStockInicialNoRegistraMovimiento(t *testing.T) {
	uc, _, _, runner := newProductUC()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Barcode: "750100002",
		Name:    "Té verde",
	})
	require.NoError(t, err)
	assert.Empty(t, runner.movements)
}

func TestProductCreate_BarcodeDuplicado(t *testing.T) {
	uc, _, _, _ := newProductUC(&entity.Product{ID: "p1", Barcode: "750100001", Name: "Existente"})

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Barcode: "750100001",
		Name:    "Otro",
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_Validacion(t *testing.T) {
	uc, _, _, _ := newProductUC()
	ctx := context.Background()

	cases := []dto.CreateProductRequest{
		{Name: "sin barcode"},
		{Barcode: "123"},
		{Barcode: "123", Name: "x", InitialStock: -1},
		{Barcode: "123", Name: "x", MinStock: -5},
		{Barcode: "123", Name: "x", UnitPrice: decimal.NewFromInt(-10)},
	}
	for _, in := range cases {
		_, err := uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	uc, _, _, _ := newProductUC()
	catID := "no-existe"

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Barcode:    "750100003",
		Name:       "Galletas",
		CategoryID: &catID,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / List
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_NoTocaStock(t *testing.T) {
	uc, repo, _, _ := newProductUC(&entity.Product{ID: "p1", Barcode: "750100001", Name: "Café", Stock: 7})

	name := "Café premium"
	out, err := uc.Update("p1", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Café premium", out.Name)
	assert.Equal(t, int64(7), out.Stock, "el update de campos no debe tocar stock")

	stored, _ := repo.GetByID("p1")
	assert.Equal(t, int64(7), stored.Stock)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	uc, _, _, _ := newProductUC()

	name := "x"
	out, err := uc.Update("no-existe", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, out, "producto inexistente devuelve nil")
}

func TestProductList_NormalizaLaBusqueda(t *testing.T) {
	uc, repo, _, _ := newProductUC(&entity.Product{ID: "p1", Barcode: "1", Name: "Café"})

	_, err := uc.List("  Café ", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, "cafe", repo.lastSearch, "la búsqueda debe llegar al repo en minúsculas y sin acentos")
}

func TestProductDelete_Inexistente(t *testing.T) {
	uc, _, _, _ := newProductUC()
	require.ErrorIs(t, uc.Delete("no-existe"), domain.ErrNotFound)
}
