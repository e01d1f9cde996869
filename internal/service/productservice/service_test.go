package productservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petbela/internal/domain"
	apperror "petbela/internal/errors"
	"petbela/internal/inventory"
	"petbela/internal/pkg/logger"
	"petbela/internal/service/productservice"
)

// MockProductRepository é uma implementação mock da interface ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEntryRepository é uma implementação mock da interface EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Save(ctx context.Context, entry domain.StockEntry) (domain.StockEntry, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(domain.StockEntry), args.Error(1)
}

func (m *MockEntryRepository) FindAll(ctx context.Context, dateRange domain.DateRange) ([]domain.StockEntry, error) {
	args := m.Called(ctx, dateRange)
	return args.Get(0).([]domain.StockEntry), args.Error(1)
}

// MockExitRepository é uma implementação mock da interface ExitRepository
type MockExitRepository struct {
	mock.Mock
}

func (m *MockExitRepository) Save(ctx context.Context, exit domain.StockExit) (domain.StockExit, error) {
	args := m.Called(ctx, exit)
	return args.Get(0).(domain.StockExit), args.Error(1)
}

func (m *MockExitRepository) FindAll(ctx context.Context, dateRange domain.DateRange) ([]domain.StockExit, error) {
	args := m.Called(ctx, dateRange)
	return args.Get(0).([]domain.StockExit), args.Error(1)
}

func newTestService(products *MockProductRepository, entries *MockEntryRepository, exits *MockExitRepository) *productservice.Service {
	return productservice.NewService(products, entries, exits, logger.NewLogger("debug"))
}

// TestCreateProduct_Success testa a criação de um produto válido.
func TestCreateProduct_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := newTestService(mockRepo, mockEntries, mockExits)

	form := inventory.ProductForm{
		Code:      "MED001",
		Name:      "Vermífugo Canino",
		Category:  "medicamentos",
		UnitPrice: "25.90",
	}

	mockRepo.On("FindAll", mock.Anything).Return([]domain.Product{}, nil)
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(p domain.Product) bool {
		return p.Code == "MED001" && p.ID != "" && !p.CreatedAt.IsZero()
	})).Return(domain.Product{ID: "id-1", Code: "MED001", Name: "Vermífugo Canino"}, nil)

	created, err := svc.CreateProduct(context.Background(), form)

	assert.NoError(t, err)
	assert.Equal(t, "MED001", created.Code)
	mockRepo.AssertExpectations(t)
}

// TestCreateProduct_Fail_DuplicateCode testa a rejeição de código duplicado.
func TestCreateProduct_Fail_DuplicateCode(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := newTestService(mockRepo, mockEntries, mockExits)

	existing := []domain.Product{{ID: "id-1", Code: "MED001", Name: "Vermífugo Canino"}}
	mockRepo.On("FindAll", mock.Anything).Return(existing, nil)

	form := inventory.ProductForm{
		Code:     "MED001",
		Name:     "Outro Produto",
		Category: "medicamentos",
	}

	_, err := svc.CreateProduct(context.Background(), form)

	assert.Error(t, err)
	var validationErr *apperror.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "Já existe um produto com este código.", validationErr.Fields["code"])
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestUpdateProduct_Success_SameCode testa a edição mantendo o próprio código.
func TestUpdateProduct_Success_SameCode(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := newTestService(mockRepo, mockEntries, mockExits)

	current := domain.Product{ID: "id-1", Code: "MED001", Name: "Vermífugo Canino", Category: domain.CategoryMedication}
	mockRepo.On("FindByID", mock.Anything, "id-1").Return(current, nil)
	mockRepo.On("FindAll", mock.Anything).Return([]domain.Product{current}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p domain.Product) bool {
		return p.ID == "id-1" && p.Code == "MED001" && p.Name == "Vermífugo Canino Plus"
	})).Return(nil)

	form := inventory.ProductForm{
		Code:     "MED001",
		Name:     "Vermífugo Canino Plus",
		Category: "medicamentos",
	}

	updated, err := svc.UpdateProduct(context.Background(), "id-1", form)

	assert.NoError(t, err)
	assert.Equal(t, "Vermífugo Canino Plus", updated.Name)
	// A checagem de histórico não é necessária quando o código não muda.
	mockEntries.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

// TestUpdateProduct_Fail_CodeChangeWithHistory testa a imutabilidade do código:
// um produto já referenciado por movimentações não pode mudar de código.
func TestUpdateProduct_Fail_CodeChangeWithHistory(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := newTestService(mockRepo, mockEntries, mockExits)

	current := domain.Product{ID: "id-1", Code: "MED001", Name: "Vermífugo Canino", Category: domain.CategoryMedication}
	mockRepo.On("FindByID", mock.Anything, "id-1").Return(current, nil)
	mockRepo.On("FindAll", mock.Anything).Return([]domain.Product{current}, nil)
	mockEntries.On("FindAll", mock.Anything, domain.DateRange{}).Return([]domain.StockEntry{
		{Product: "MED001", Quantity: 50},
	}, nil)

	form := inventory.ProductForm{
		Code:     "MED999",
		Name:     "Vermífugo Canino",
		Category: "medicamentos",
	}

	_, err := svc.UpdateProduct(context.Background(), "id-1", form)

	assert.Error(t, err)
	var validationErr *apperror.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields["code"], "MED001")
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// TestUpdateProduct_Success_CodeChangeWithoutHistory testa que o código pode
// mudar enquanto nenhuma movimentação o referencia.
func TestUpdateProduct_Success_CodeChangeWithoutHistory(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := newTestService(mockRepo, mockEntries, mockExits)

	current := domain.Product{ID: "id-1", Code: "MED001", Name: "Vermífugo Canino", Category: domain.CategoryMedication}
	mockRepo.On("FindByID", mock.Anything, "id-1").Return(current, nil)
	mockRepo.On("FindAll", mock.Anything).Return([]domain.Product{current}, nil)
	mockEntries.On("FindAll", mock.Anything, domain.DateRange{}).Return([]domain.StockEntry{}, nil)
	mockExits.On("FindAll", mock.Anything, domain.DateRange{}).Return([]domain.StockExit{}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p domain.Product) bool {
		return p.Code == "MED999"
	})).Return(nil)

	form := inventory.ProductForm{
		Code:     "MED999",
		Name:     "Vermífugo Canino",
		Category: "medicamentos",
	}

	updated, err := svc.UpdateProduct(context.Background(), "id-1", form)

	assert.NoError(t, err)
	assert.Equal(t, "MED999", updated.Code)
	mockRepo.AssertExpectations(t)
}

// TestDeleteProduct_Success testa a exclusão sem cascata para o histórico.
func TestDeleteProduct_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := newTestService(mockRepo, mockEntries, mockExits)

	mockRepo.On("Delete", mock.Anything, "id-1").Return(nil)

	err := svc.DeleteProduct(context.Background(), "id-1")

	assert.NoError(t, err)
	// O histórico de movimentações nunca é tocado pela exclusão.
	mockEntries.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	mockExits.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

// TestGetProductByID_Fail_NotFound testa a propagação do erro de não encontrado.
func TestGetProductByID_Fail_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := newTestService(mockRepo, mockEntries, mockExits)

	notFound := apperror.NewNotFoundError("Produto com ID id-x não encontrado.")
	mockRepo.On("FindByID", mock.Anything, "id-x").Return(domain.Product{}, notFound)

	_, err := svc.GetProductByID(context.Background(), "id-x")

	assert.Error(t, err)
	var notFoundErr *apperror.NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
}
