package productservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"petbela/internal/domain"
	apperror "petbela/internal/errors"
	"petbela/internal/inventory"
	"petbela/internal/pkg/logger"
)

// Service implementa a lógica de negócio do catálogo de produtos: validação
// dos dados brutos do formulário, unicidade de código e a regra de
// imutabilidade de código já referenciado por movimentações.
type Service struct {
	products domain.ProductRepository
	entries  domain.EntryRepository
	exits    domain.ExitRepository
	logger   logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
// Os repositórios de movimentação são usados apenas na checagem de código
// referenciado (edição e histórico).
func NewService(products domain.ProductRepository, entries domain.EntryRepository, exits domain.ExitRepository, log logger.Logger) *Service {
	return &Service{products: products, entries: entries, exits: exits, logger: log}
}

// CreateProduct valida o formulário contra o catálogo atual e persiste o novo produto.
func (s *Service) CreateProduct(ctx context.Context, form inventory.ProductForm) (domain.Product, error) {
	existing, err := s.products.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao carregar catálogo para validação.", err)
		return domain.Product{}, err
	}

	product, fields := inventory.ValidateProduct(form, existing, "")
	if fields != nil {
		return domain.Product{}, apperror.NewFieldValidationError("Dados de produto inválidos.", fields)
	}

	product.ID = uuid.NewString()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	created, err := s.products.Save(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("Produto criado.", map[string]interface{}{"product_id": created.ID, "code": created.Code})
	return created, nil
}

// GetProducts retorna o catálogo completo ordenado por nome.
func (s *Service) GetProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewInternalError("Falha interna ao buscar produtos.", err)
	}
	return products, nil
}

// GetProductByID busca um produto pelo ID do registro.
func (s *Service) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, apperror.NewValidationError("ID do produto é obrigatório.")
	}
	return s.products.FindByID(ctx, id)
}

// UpdateProduct valida o formulário (excluindo o próprio registro da checagem
// de unicidade) e atualiza o produto em lugar (in place).
//
// O código é imutável a partir do momento em que qualquer entrada ou saída o
// referencia: a mudança de código de um produto com histórico é rejeitada,
// preservando a integridade das referências "dangling-safe".
func (s *Service) UpdateProduct(ctx context.Context, id string, form inventory.ProductForm) (domain.Product, error) {
	current, err := s.products.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	existing, err := s.products.FindAll(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	product, fields := inventory.ValidateProduct(form, existing, id)
	if fields != nil {
		return domain.Product{}, apperror.NewFieldValidationError("Dados de produto inválidos.", fields)
	}

	if product.Code != current.Code {
		referenced, refErr := s.codeReferenced(ctx, current.Code)
		if refErr != nil {
			return domain.Product{}, refErr
		}
		if referenced {
			return domain.Product{}, apperror.NewFieldValidationError("Dados de produto inválidos.", inventory.FieldErrors{
				"code": fmt.Sprintf("O código %s já é referenciado por movimentações e não pode ser alterado.", current.Code),
			})
		}
	}

	product.ID = current.ID
	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("Produto atualizado.", map[string]interface{}{"product_id": product.ID, "code": product.Code})
	return product, nil
}

// DeleteProduct exclui um produto do catálogo. A exclusão não cascateia para
// o histórico: entradas e saídas mantêm o código como referência e as telas
// exibem o código bruto no lugar do nome.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewValidationError("ID do produto é obrigatório.")
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Produto excluído.", map[string]interface{}{"product_id": id})
	return nil
}

// Watcher expõe a capacidade opcional de observar mudanças no catálogo.
// Retorna false quando o backend de persistência não oferece listeners
// (caso do Postgres).
func (s *Service) Watcher() (domain.ProductWatcher, bool) {
	watcher, ok := s.products.(domain.ProductWatcher)
	return watcher, ok
}

// codeReferenced verifica se alguma movimentação histórica referencia o código.
func (s *Service) codeReferenced(ctx context.Context, code string) (bool, error) {
	entries, err := s.entries.FindAll(ctx, domain.DateRange{})
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.Product == code {
			return true, nil
		}
	}

	exits, err := s.exits.FindAll(ctx, domain.DateRange{})
	if err != nil {
		return false, err
	}
	for _, exit := range exits {
		if exit.Product == code {
			return true, nil
		}
	}

	return false, nil
}
