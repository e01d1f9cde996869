package reportservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petbela/internal/domain"
	apperror "petbela/internal/errors"
	"petbela/internal/pkg/logger"
	"petbela/internal/service/reportservice"
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

// TestMonthlyReport_Success testa o relatório mensal: o gateway recebe o
// período inclusivo exato do mês e os totais são computados sobre o snapshot.
func TestMonthlyReport_Success(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := reportservice.NewService(mockProducts, mockEntries, mockExits, logger.NewLogger("debug"))

	period := domain.DateRange{From: "2025-09-01", To: "2025-09-30"}
	mockEntries.On("FindAll", mock.Anything, period).Return([]domain.StockEntry{
		{Product: "RAC001", Quantity: 100, UnitPrice: 30.0, Date: "2025-09-05"},
	}, nil)
	mockExits.On("FindAll", mock.Anything, period).Return([]domain.StockExit{
		{Product: "RAC001", Quantity: 10, UnitPrice: 45.0, Kind: domain.ExitSale, Date: "2025-09-10"},
	}, nil)

	report, err := svc.MonthlyReport(context.Background(), 2025, 9)

	assert.NoError(t, err)
	assert.Equal(t, "9/2025", report.Period)
	assert.Equal(t, 3000.0, report.TotalEntryCost)
	assert.Equal(t, 450.0, report.TotalExitRevenue)
	assert.Equal(t, 1, report.KindCounts[domain.ExitSale])
	mockEntries.AssertExpectations(t)
	mockExits.AssertExpectations(t)
}

// TestMonthlyReport_Fail_InvalidMonth testa a rejeição de mês fora de 1..12.
func TestMonthlyReport_Fail_InvalidMonth(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := reportservice.NewService(mockProducts, mockEntries, mockExits, logger.NewLogger("debug"))

	_, err := svc.MonthlyReport(context.Background(), 2025, 13)

	assert.Error(t, err)
	var validationErr *apperror.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	mockEntries.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

// TestDashboard_Success_CurrentMonth testa o resumo do mês corrente com o
// relógio injetado.
func TestDashboard_Success_CurrentMonth(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := reportservice.NewService(mockProducts, mockEntries, mockExits, logger.NewLogger("debug")).
		WithClock(func() time.Time {
			return time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
		})

	mockProducts.On("FindAll", mock.Anything).Return([]domain.Product{
		{Code: "MED001", Name: "Vermífugo Canino"},
	}, nil)
	mockEntries.On("FindAll", mock.Anything, domain.DateRange{}).Return([]domain.StockEntry{
		{Product: "MED001", Quantity: 50, Date: "2025-09-01"},
		{Product: "MED001", Quantity: 10, Date: "2025-08-20"}, // Mês anterior
	}, nil)
	mockExits.On("FindAll", mock.Anything, domain.DateRange{}).Return([]domain.StockExit{
		{Product: "MED001", Quantity: 2, UnitPrice: 25.0, Kind: domain.ExitSale, Date: "2025-09-10"},
	}, nil)

	summary, err := svc.Dashboard(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, summary.TotalProducts)
	assert.Equal(t, 1, summary.EntriesMonth)
	assert.Equal(t, 1, summary.ExitsMonth)
	assert.Equal(t, 50.0, summary.MonthlyRevenue)
	assert.NotEmpty(t, summary.RecentActivity)
}

// TestStockView_Success_DerivedQuantities testa as linhas da tela de estoque
// derivadas do snapshot completo.
func TestStockView_Success_DerivedQuantities(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := reportservice.NewService(mockProducts, mockEntries, mockExits, logger.NewLogger("debug"))

	mockProducts.On("FindAll", mock.Anything).Return([]domain.Product{
		{Code: "MED001", Name: "Vermífugo Canino", Category: domain.CategoryMedication, MinimumStock: 10},
	}, nil)
	mockEntries.On("FindAll", mock.Anything, domain.DateRange{}).Return([]domain.StockEntry{
		{Product: "MED001", Quantity: 50},
	}, nil)
	mockExits.On("FindAll", mock.Anything, domain.DateRange{}).Return([]domain.StockExit{
		{Product: "MED001", Quantity: 2, Kind: domain.ExitSale},
	}, nil)

	rows, err := svc.StockView(context.Background(), "", "")

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 48, rows[0].Quantity)
	assert.False(t, rows[0].LowStock)
}

// TestStockView_Fail_RepoError testa o embrulho do erro do catálogo.
func TestStockView_Fail_RepoError(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockEntries := new(MockEntryRepository)
	mockExits := new(MockExitRepository)
	svc := reportservice.NewService(mockProducts, mockEntries, mockExits, logger.NewLogger("debug"))

	repoErr := errors.New("conexão perdida")
	mockProducts.On("FindAll", mock.Anything).Return([]domain.Product{}, repoErr)

	_, err := svc.StockView(context.Background(), "", "")

	assert.Error(t, err)
	var internalErr *apperror.InternalError
	assert.True(t, errors.As(err, &internalErr))
}
