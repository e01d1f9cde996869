package reportservice

import (
	"context"
	"time"

	"petbela/internal/domain"
	apperror "petbela/internal/errors"
	"petbela/internal/inventory"
	"petbela/internal/pkg/logger"
)

// Service produz as visões derivadas do sistema: relatório mensal, resumo do
// dashboard e a tela de estoque. Cada computação captura um único Snapshot de
// entradas/saídas antes de derivar qualquer coisa — nunca recomputa
// incrementalmente contra coleções vivas.
type Service struct {
	products domain.ProductRepository
	entries  domain.EntryRepository
	exits    domain.ExitRepository
	logger   logger.Logger
	now      func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Relatórios.
func NewService(products domain.ProductRepository, entries domain.EntryRepository, exits domain.ExitRepository, log logger.Logger) *Service {
	return &Service{
		products: products,
		entries:  entries,
		exits:    exits,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock substitui a fonte de tempo do dashboard (usado em testes).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// MonthlyReport gera o relatório do mês de calendário informado.
// O gateway é consultado já com o período inclusivo do mês, e o agregador puro
// computa totais e contagens por tipo sobre o Snapshot capturado.
func (s *Service) MonthlyReport(ctx context.Context, year int, month int) (domain.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return domain.MonthlyReport{}, apperror.NewValidationError("Mês deve estar entre 1 e 12.")
	}
	if year < 1 {
		return domain.MonthlyReport{}, apperror.NewValidationError("Ano inválido.")
	}

	from, to := inventory.MonthRange(year, time.Month(month))
	period := domain.DateRange{From: from, To: to}

	entries, err := s.entries.FindAll(ctx, period)
	if err != nil {
		return domain.MonthlyReport{}, apperror.NewInternalError("Falha interna ao buscar entradas do período.", err)
	}
	exits, err := s.exits.FindAll(ctx, period)
	if err != nil {
		return domain.MonthlyReport{}, apperror.NewInternalError("Falha interna ao buscar saídas do período.", err)
	}

	snapshot := domain.Snapshot{Entries: entries, Exits: exits}
	report := inventory.MonthlyReport(year, time.Month(month), snapshot)

	s.logger.Debug("Relatório mensal gerado.", map[string]interface{}{
		"period":  report.Period,
		"entries": len(report.Entries),
		"exits":   len(report.Exits),
	})
	return report, nil
}

// Dashboard produz o resumo derivado da tela inicial para o mês corrente.
func (s *Service) Dashboard(ctx context.Context) (domain.DashboardSummary, error) {
	products, snapshot, err := s.captureView(ctx)
	if err != nil {
		return domain.DashboardSummary{}, err
	}

	now := s.now()
	return inventory.Dashboard(now.Year(), now.Month(), products, snapshot), nil
}

// StockView produz as linhas da tela de estoque com quantidade derivada e
// status de estoque baixo, com filtros opcionais de busca e categoria.
func (s *Service) StockView(ctx context.Context, search string, category domain.Category) ([]domain.StockRow, error) {
	products, snapshot, err := s.captureView(ctx)
	if err != nil {
		return nil, err
	}

	return inventory.StockRows(products, snapshot, search, category), nil
}

// captureView lê catálogo, entradas e saídas para variáveis locais antes de
// qualquer cálculo derivado, garantindo uma visão consistente.
func (s *Service) captureView(ctx context.Context) ([]domain.Product, domain.Snapshot, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, domain.Snapshot{}, apperror.NewInternalError("Falha interna ao buscar produtos.", err)
	}

	entries, err := s.entries.FindAll(ctx, domain.DateRange{})
	if err != nil {
		return nil, domain.Snapshot{}, apperror.NewInternalError("Falha interna ao buscar entradas.", err)
	}

	exits, err := s.exits.FindAll(ctx, domain.DateRange{})
	if err != nil {
		return nil, domain.Snapshot{}, apperror.NewInternalError("Falha interna ao buscar saídas.", err)
	}

	return products, domain.Snapshot{Entries: entries, Exits: exits}, nil
}
