package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"petbela/internal/domain"
	"petbela/internal/errors"
	"petbela/internal/pkg/cache"
	"petbela/internal/pkg/logger"
)

// Chave de cache para a listagem do catálogo de produtos.
const catalogCacheKey = "products:all"

// ProductRepository implementa domain.ProductRepository sobre PostgreSQL,
// com estratégia Cache-Aside (Redis) para a listagem do catálogo.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// Save persiste um novo Produto no banco de dados.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const insertSQL = `INSERT INTO products (id, code, name, category, unit_price, minimum_stock, created_at, updated_at)
                       VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		product.ID,
		product.Code,
		product.Name,
		product.Category,
		product.UnitPrice,
		product.MinimumStock,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, errors.NewGatewayError("Falha ao inserir produto", err)
	}

	r.invalidateCatalog(ctxTimeout)
	return product, nil
}

// FindByID busca um produto pelo ID do registro.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		SELECT id, code, name, category, unit_price, minimum_stock, created_at, updated_at
		FROM products
		WHERE id = $1`

	var product domain.Product
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&product.ID,
		&product.Code,
		&product.Name,
		&product.Category,
		&product.UnitPrice,
		&product.MinimumStock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe na base de dados.", id))
	}
	if err != nil {
		return domain.Product{}, errors.NewGatewayError("Falha ao buscar produto", err)
	}

	return product, nil
}

// FindAll retorna o catálogo completo ordenado por nome, utilizando a
// estratégia Cache-Aside: tenta o Redis antes do Postgres e popula o cache
// após uma leitura bem-sucedida do banco.
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// --- Cache-Aside (READ) ---
	if cachedData, err := r.Cache.Get(ctxTimeout, catalogCacheKey); err == nil {
		var products []domain.Product
		if json.Unmarshal([]byte(cachedData), &products) == nil {
			return products, nil
		}
		// Desserialização falhou: segue para o DB.
	} else if err != cache.ErrCacheMiss {
		// Erro real de cache (ex: conexão perdida): logamos e seguimos para o DB.
		r.logger.Warn("Falha ao ler catálogo do cache.", map[string]interface{}{"error": err.Error()})
	}

	const query = `
		SELECT id, code, name, category, unit_price, minimum_stock, created_at, updated_at
		FROM products
		ORDER BY name`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		return nil, errors.NewGatewayError("Falha ao listar produtos", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Code,
			&product.Name,
			&product.Category,
			&product.UnitPrice,
			&product.MinimumStock,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, errors.NewGatewayError("Falha ao mapear produto", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewGatewayError("Falha ao iterar produtos", err)
	}

	// --- Cache-Aside (WRITE) ---
	if productsJSON, marshalErr := json.Marshal(products); marshalErr == nil {
		r.Cache.Set(ctxTimeout, catalogCacheKey, productsJSON, r.CacheTTL)
	}

	return products, nil
}

// Update atualiza um produto existente em lugar (in place).
func (r *ProductRepository) Update(ctx context.Context, product domain.Product) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `
		UPDATE products
		SET code = $1, name = $2, category = $3, unit_price = $4, minimum_stock = $5, updated_at = $6
		WHERE id = $7`

	result, err := r.DB.ExecContext(ctxTimeout, updateSQL,
		product.Code,
		product.Name,
		product.Category,
		product.UnitPrice,
		product.MinimumStock,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return errors.NewGatewayError("Falha ao atualizar produto", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewGatewayError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe na base de dados.", product.ID))
	}

	r.invalidateCatalog(ctxTimeout)
	return nil
}

// Delete remove um produto do catálogo. A exclusão não cascateia: entradas e
// saídas históricas mantêm o código do produto como referência.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return errors.NewGatewayError("Falha ao excluir produto", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewGatewayError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe na base de dados.", id))
	}

	r.invalidateCatalog(ctxTimeout)
	return nil
}

// invalidateCatalog descarta a listagem cacheada após qualquer escrita.
func (r *ProductRepository) invalidateCatalog(ctx context.Context) {
	if err := r.Cache.Delete(ctx, catalogCacheKey); err != nil && err != cache.ErrCacheMiss {
		r.logger.Warn("Falha ao invalidar cache do catálogo.", map[string]interface{}{"error": err.Error()})
	}
}
