package movementservice_test

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
	"petbela/internal/service/movementservice"
)

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

// TestRegisterEntry_Success testa o registro de uma entrada válida.
func TestRegisterEntry_Success(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := movementservice.NewService(mockEntries, mockExits, logger.NewLogger("debug"))

	form := inventory.MovementForm{
		Product:   "MED001",
		Quantity:  "50",
		UnitPrice: "12.30",
		Supplier:  "Distribuidora Vet",
		Date:      "2025-09-01",
	}

	mockEntries.On("Save", mock.Anything, mock.MatchedBy(func(e domain.StockEntry) bool {
		return e.Product == "MED001" && e.Quantity == 50 && e.ID != ""
	})).Return(domain.StockEntry{ID: "ent-1", Product: "MED001", Quantity: 50}, nil)

	created, err := svc.RegisterEntry(context.Background(), form)

	assert.NoError(t, err)
	assert.Equal(t, "ent-1", created.ID)
	mockEntries.AssertExpectations(t)
}

// TestRegisterEntry_Fail_Validation testa que um formulário inválido nunca
// chega ao repositório.
func TestRegisterEntry_Fail_Validation(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := movementservice.NewService(mockEntries, mockExits, logger.NewLogger("debug"))

	form := inventory.MovementForm{
		Product:  "",
		Quantity: "-1",
		Date:     "2025-09-01",
	}

	_, err := svc.RegisterEntry(context.Background(), form)

	assert.Error(t, err)
	var validationErr *apperror.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "product")
	assert.Contains(t, validationErr.Fields, "quantity")
	mockEntries.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestRegisterExit_Success_WithinStock testa uma saída dentro do saldo,
// derivado do snapshot capturado antes da gravação.
func TestRegisterExit_Success_WithinStock(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := movementservice.NewService(mockEntries, mockExits, logger.NewLogger("debug"))

	mockEntries.On("FindAll", mock.Anything, domain.DateRange{}).Return([]domain.StockEntry{
		{Product: "MED001", Quantity: 50},
	}, nil)
	mockExits.On("FindAll", mock.Anything, domain.DateRange{}).Return([]domain.StockExit{
		{Product: "MED001", Quantity: 2, Kind: domain.ExitSale},
	}, nil)
	mockExits.On("Save", mock.Anything, mock.MatchedBy(func(e domain.StockExit) bool {
		return e.Product == "MED001" && e.Quantity == 48 && e.Kind == domain.ExitSale
	})).Return(domain.StockExit{ID: "sai-1", Product: "MED001", Quantity: 48}, nil)

	form := inventory.MovementForm{
		Product:  "MED001",
		Quantity: "48", // Exatamente o disponível (50 - 2)
		Kind:     "venda",
		Date:     "2025-09-10",
	}

	created, err := svc.RegisterExit(context.Background(), form)

	assert.NoError(t, err)
	assert.Equal(t, "sai-1", created.ID)
	mockExits.AssertExpectations(t)
}

// TestRegisterExit_Fail_InsufficientStock testa a rejeição de saída acima do
// saldo, com a quantidade disponível na mensagem do campo.
func TestRegisterExit_Fail_InsufficientStock(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := movementservice.NewService(mockEntries, mockExits, logger.NewLogger("debug"))

	mockEntries.On("FindAll", mock.Anything, domain.DateRange{}).Return([]domain.StockEntry{
		{Product: "MED001", Quantity: 5},
	}, nil)
	mockExits.On("FindAll", mock.Anything, domain.DateRange{}).Return([]domain.StockExit{
		{Product: "MED001", Quantity: 2, Kind: domain.ExitSale},
	}, nil)

	form := inventory.MovementForm{
		Product:  "MED001",
		Quantity: "10",
		Kind:     "venda",
		Date:     "2025-09-10",
	}

	_, err := svc.RegisterExit(context.Background(), form)

	assert.Error(t, err)
	var validationErr *apperror.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "Quantidade insuficiente em estoque! Disponível: 3", validationErr.Fields["quantity"])
	mockExits.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestListEntries_Success_WithDateRange testa a listagem filtrada por período.
func TestListEntries_Success_WithDateRange(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := movementservice.NewService(mockEntries, mockExits, logger.NewLogger("debug"))

	dateRange := domain.DateRange{From: "2025-09-01", To: "2025-09-30"}
	expected := []domain.StockEntry{
		{ID: "ent-2", Product: "MED001", Date: "2025-09-20"},
		{ID: "ent-1", Product: "MED001", Date: "2025-09-01"},
	}
	mockEntries.On("FindAll", mock.Anything, dateRange).Return(expected, nil)

	entries, err := svc.ListEntries(context.Background(), dateRange)

	assert.NoError(t, err)
	assert.Equal(t, expected, entries)
	mockEntries.AssertExpectations(t)
}

// TestListExits_Fail_RepoError testa o embrulho do erro do repositório.
func TestListExits_Fail_RepoError(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := movementservice.NewService(mockEntries, mockExits, logger.NewLogger("debug"))

	repoErr := errors.New("conexão perdida")
	mockExits.On("FindAll", mock.Anything, domain.DateRange{}).Return([]domain.StockExit{}, repoErr)

	_, err := svc.ListExits(context.Background(), domain.DateRange{})

	assert.Error(t, err)
	var internalErr *apperror.InternalError
	assert.True(t, errors.As(err, &internalErr))
	assert.ErrorIs(t, err, repoErr)
}
