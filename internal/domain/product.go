package domain

import (
	"context"
	"time"
)

// Product representa um item do catálogo do petshop (a Entidade).
// O campo Code é o identificador de negócio atribuído pelo usuário; entradas e
// saídas referenciam o produto por este código, nunca pelo ID do documento.
type Product struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"` // Código único de produto (ex: "MED001")
	Name         string    `json:"name"`
	Category     Category  `json:"category"`
	UnitPrice    float64   `json:"unit_price"`
	MinimumStock int       `json:"minimum_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Category é o tipo enumerado de categorias de produto do petshop.
type Category string

// Constantes para as categorias de produto.
const (
	CategoryMedication Category = "medicamentos"
	CategoryFeed       Category = "racao"
	CategoryToy        Category = "brinquedos"
	CategoryHygiene    Category = "higiene"
	CategoryAccessory  Category = "acessorios"
)

// categoryLabels mapeia cada categoria para o rótulo de exibição.
var categoryLabels = map[Category]string{
	CategoryMedication: "Medicamentos",
	CategoryFeed:       "Ração",
	CategoryToy:        "Brinquedos",
	CategoryHygiene:    "Higiene",
	CategoryAccessory:  "Acessórios",
}

// Label retorna o rótulo de exibição da categoria.
// Categorias desconhecidas retornam o valor bruto (tolerância a dados legados).
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ValidCategory informa se a categoria é uma das constantes conhecidas.
func ValidCategory(c Category) bool {
	_, ok := categoryLabels[c]
	return ok
}

// --- Interfaces de Contrato (O CORAÇÃO DA ARQUITETURA LIMPA) ---

// ProductRepository é a interface que a camada de Repositório (Data Access) DEVE implementar.
// FindAll retorna os produtos ordenados por nome.
type ProductRepository interface {
	Save(ctx context.Context, product Product) (Product, error)
	FindByID(ctx context.Context, id string) (Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, product Product) error
	Delete(ctx context.Context, id string) error
}

// ProductWatcher é um contrato opcional: repositórios capazes de notificar
// mudanças na coleção de produtos (ex: listener de snapshots do Firestore)
// o implementam. O backend Postgres não oferece essa capacidade.
type ProductWatcher interface {
	Subscribe(ctx context.Context, onChange func([]Product)) (unsubscribe func(), err error)
}
