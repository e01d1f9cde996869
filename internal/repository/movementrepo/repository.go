// Package movementrepo implementa os repositórios de movimentações de estoque
// (entradas e saídas) sobre PostgreSQL. Movimentações são imutáveis: os
// repositórios expõem apenas inserção e listagem ordenada por data decrescente,
// com filtro opcional de período inclusivo.
package movementrepo

import (
	"context"
	"database/sql"
	"time"

	"petbela/internal/domain"
	"petbela/internal/errors"
	"petbela/internal/pkg/logger"
)

// EntryRepository implementa domain.EntryRepository sobre PostgreSQL.
type EntryRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewEntryRepository cria e retorna uma nova instância do Repositório de Entradas.
func NewEntryRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *EntryRepository {
	return &EntryRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

// Save persiste uma nova entrada de estoque.
func (r *EntryRepository) Save(ctx context.Context, entry domain.StockEntry) (domain.StockEntry, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const insertSQL = `
		INSERT INTO stock_entries (id, product_code, quantity, unit_price, supplier, invoice_ref, entry_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		entry.ID,
		entry.Product,
		entry.Quantity,
		entry.UnitPrice,
		entry.Supplier,
		entry.InvoiceRef,
		entry.Date,
		entry.Notes,
		entry.CreatedAt,
	)
	if err != nil {
		return domain.StockEntry{}, errors.NewGatewayError("Falha ao inserir entrada de estoque", err)
	}

	return entry, nil
}

// FindAll lista as entradas ordenadas por data decrescente. dateRange limita o
// período (limites inclusivos); campos vazios significam "sem limite".
func (r *EntryRepository) FindAll(ctx context.Context, dateRange domain.DateRange) ([]domain.StockEntry, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
		SELECT id, product_code, quantity, unit_price, supplier, invoice_ref, entry_date, notes, created_at
		FROM stock_entries`
	query, args := appendDateFilter(query, "entry_date", dateRange)
	query += ` ORDER BY entry_date DESC, created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		return nil, errors.NewGatewayError("Falha ao listar entradas", err)
	}
	defer rows.Close()

	entries := []domain.StockEntry{}
	for rows.Next() {
		var entry domain.StockEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Product,
			&entry.Quantity,
			&entry.UnitPrice,
			&entry.Supplier,
			&entry.InvoiceRef,
			&entry.Date,
			&entry.Notes,
			&entry.CreatedAt,
		); err != nil {
			return nil, errors.NewGatewayError("Falha ao mapear entrada", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewGatewayError("Falha ao iterar entradas", err)
	}

	return entries, nil
}

// ExitRepository implementa domain.ExitRepository sobre PostgreSQL.
type ExitRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewExitRepository cria e retorna uma nova instância do Repositório de Saídas.
func NewExitRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *ExitRepository {
	return &ExitRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

// Save persiste uma nova saída de estoque.
func (r *ExitRepository) Save(ctx context.Context, exit domain.StockExit) (domain.StockExit, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const insertSQL = `
		INSERT INTO stock_exits (id, product_code, quantity, kind, customer, unit_price, exit_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		exit.ID,
		exit.Product,
		exit.Quantity,
		exit.Kind,
		exit.Customer,
		exit.UnitPrice,
		exit.Date,
		exit.Notes,
		exit.CreatedAt,
	)
	if err != nil {
		return domain.StockExit{}, errors.NewGatewayError("Falha ao inserir saída de estoque", err)
	}

	return exit, nil
}

// FindAll lista as saídas ordenadas por data decrescente, com filtro opcional
// de período inclusivo.
func (r *ExitRepository) FindAll(ctx context.Context, dateRange domain.DateRange) ([]domain.StockExit, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
		SELECT id, product_code, quantity, kind, customer, unit_price, exit_date, notes, created_at
		FROM stock_exits`
	query, args := appendDateFilter(query, "exit_date", dateRange)
	query += ` ORDER BY exit_date DESC, created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		return nil, errors.NewGatewayError("Falha ao listar saídas", err)
	}
	defer rows.Close()

	exits := []domain.StockExit{}
	for rows.Next() {
		var exit domain.StockExit
		if err := rows.Scan(
			&exit.ID,
			&exit.Product,
			&exit.Quantity,
			&exit.Kind,
			&exit.Customer,
			&exit.UnitPrice,
			&exit.Date,
			&exit.Notes,
			&exit.CreatedAt,
		); err != nil {
			return nil, errors.NewGatewayError("Falha ao mapear saída", err)
		}
		exits = append(exits, exit)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewGatewayError("Falha ao iterar saídas", err)
	}

	return exits, nil
}

// appendDateFilter acrescenta o WHERE de período inclusivo à query quando o
// filtro está presente, devolvendo a query e os argumentos posicionais.
func appendDateFilter(query, column string, dateRange domain.DateRange) (string, []interface{}) {
	args := []interface{}{}
	switch {
	case dateRange.From != "" && dateRange.To != "":
		query += ` WHERE ` + column + ` >= $1 AND ` + column + ` <= $2`
		args = append(args, dateRange.From, dateRange.To)
	case dateRange.From != "":
		query += ` WHERE ` + column + ` >= $1`
		args = append(args, dateRange.From)
	case dateRange.To != "":
		query += ` WHERE ` + column + ` <= $1`
		args = append(args, dateRange.To)
	}
	return query, args
}
