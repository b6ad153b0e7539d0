package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Barcode-stock-api/internal/application/dto"
	"github.com/jhoicas/Barcode-stock-api/internal/application/usecase"
	"github.com/jhoicas/Barcode-stock-api/internal/domain"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/entity"
)

func TestCategoryCreate_Ok(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	out, err := uc.Create(dto.CreateCategoryRequest{Name: "Electrónica", Description: "Electrónica de consumo"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Electrónica", out.Name)
}

func TestCategoryCreate_NombreVacio(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())
	_, err := uc.Create(dto.CreateCategoryRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryCreate_NombreDuplicado(t *testing.T) {
	repo := newFakeCategoryRepo(&entity.Category{ID: "c1", Name: "Alimentos"})
	uc := usecase.NewCategoryUseCase(repo)

	_, err := uc.Create(dto.CreateCategoryRequest{Name: "Alimentos"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoryUpdate_NombreTomadoPorOtra(t *testing.T) {
	repo := newFakeCategoryRepo(
		&entity.Category{ID: "c1", Name: "Alimentos"},
		&entity.Category{ID: "c2", Name: "Bebidas"},
	)
	uc := usecase.NewCategoryUseCase(repo)

	name := "Alimentos"
	_, err := uc.Update("c2", dto.UpdateCategoryRequest{Name: &name})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoryDelete_ConProductosSeRechaza(t *testing.T) {
	repo := newFakeCategoryRepo(&entity.Category{ID: "c1", Name: "Alimentos"})
	repo.productsIn["c1"] = 3
	uc := usecase.NewCategoryUseCase(repo)

	err := uc.Delete("c1")
	require.ErrorIs(t, err, domain.ErrConflict, "una categoría con productos no puede borrarse")

	cat, _ := repo.GetByID("c1")
	assert.NotNil(t, cat, "la categoría debe seguir existiendo")
}

func TestCategoryDelete_SinProductos(t *testing.T) {
	repo := newFakeCategoryRepo(&entity.Category{ID: "c1", Name: "Alimentos"})
	uc := usecase.NewCategoryUseCase(repo)

	require.NoError(t, uc.Delete("c1"))
	cat, _ := repo.GetByID("c1")
	assert.Nil(t, cat)
}

func TestCategoryDelete_Inexistente(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())
	require.ErrorIs(t, uc.Delete("no-existe"), domain.ErrNotFound)
}
