package movementservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"petbela/internal/domain"
	apperror "petbela/internal/errors"
	"petbela/internal/inventory"
	"petbela/internal/pkg/logger"
)

// Service implementa a lógica de negócio das movimentações de estoque.
// Entradas e saídas são imutáveis após a criação: o serviço só registra e lista.
type Service struct {
	entries domain.EntryRepository
	exits   domain.ExitRepository
	logger  logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Movimentações.
func NewService(entries domain.EntryRepository, exits domain.ExitRepository, log logger.Logger) *Service {
	return &Service{entries: entries, exits: exits, logger: log}
}

// RegisterEntry valida o formulário de entrada e persiste o evento.
func (s *Service) RegisterEntry(ctx context.Context, form inventory.MovementForm) (domain.StockEntry, error) {
	entry, fields := inventory.ValidateEntry(form)
	if fields != nil {
		return domain.StockEntry{}, apperror.NewFieldValidationError("Dados de entrada inválidos.", fields)
	}

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()

	created, err := s.entries.Save(ctx, entry)
	if err != nil {
		return domain.StockEntry{}, err
	}

	s.logger.Info("Entrada de estoque registrada.", map[string]interface{}{
		"entry_id": created.ID,
		"product":  created.Product,
		"quantity": created.Quantity,
	})
	return created, nil
}

// RegisterExit valida o formulário de saída e persiste o evento.
//
// A quantidade disponível é derivada de um Snapshot capturado ANTES da nova
// saída ser aplicada: as duas coleções são lidas para variáveis locais e a
// validação computa sobre elas, nunca sobre uma coleção viva em mutação.
// Nenhuma saída pode tornar o saldo derivado negativo; a violação reporta a
// quantidade disponível exata na mensagem do campo.
func (s *Service) RegisterExit(ctx context.Context, form inventory.MovementForm) (domain.StockExit, error) {
	snapshot, err := s.captureSnapshot(ctx)
	if err != nil {
		return domain.StockExit{}, err
	}

	available := func(productCode string) int {
		return inventory.CurrentQuantity(productCode, snapshot.Entries, snapshot.Exits)
	}

	exit, fields := inventory.ValidateExit(form, available)
	if fields != nil {
		return domain.StockExit{}, apperror.NewFieldValidationError("Dados de saída inválidos.", fields)
	}

	exit.ID = uuid.NewString()
	exit.CreatedAt = time.Now().UTC()

	created, err := s.exits.Save(ctx, exit)
	if err != nil {
		return domain.StockExit{}, err
	}

	s.logger.Info("Saída de estoque registrada.", map[string]interface{}{
		"exit_id":  created.ID,
		"product":  created.Product,
		"quantity": created.Quantity,
		"kind":     string(created.Kind),
	})
	return created, nil
}

// ListEntries lista as entradas por data decrescente, com filtro opcional de período.
func (s *Service) ListEntries(ctx context.Context, dateRange domain.DateRange) ([]domain.StockEntry, error) {
	entries, err := s.entries.FindAll(ctx, dateRange)
	if err != nil {
		return nil, apperror.NewInternalError("Falha interna ao buscar entradas.", err)
	}
	return entries, nil
}

// ListExits lista as saídas por data decrescente, com filtro opcional de período.
func (s *Service) ListExits(ctx context.Context, dateRange domain.DateRange) ([]domain.StockExit, error) {
	exits, err := s.exits.FindAll(ctx, dateRange)
	if err != nil {
		return nil, apperror.NewInternalError("Falha interna ao buscar saídas.", err)
	}
	return exits, nil
}

// captureSnapshot lê entradas e saídas completas para uma visão consistente
// local, entregue pronta às funções puras do núcleo.
func (s *Service) captureSnapshot(ctx context.Context) (domain.Snapshot, error) {
	entries, err := s.entries.FindAll(ctx, domain.DateRange{})
	if err != nil {
		return domain.Snapshot{}, apperror.NewInternalError("Falha interna ao capturar entradas.", err)
	}

	exits, err := s.exits.FindAll(ctx, domain.DateRange{})
	if err != nil {
		return domain.Snapshot{}, apperror.NewInternalError("Falha interna ao capturar saídas.", err)
	}

	return domain.Snapshot{Entries: entries, Exits: exits}, nil
}
