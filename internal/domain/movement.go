package domain

import (
	"context"
	"time"
)

// DateLayout é o formato de data de calendário usado em todo o sistema.
// Datas de movimentação não têm componente de hora: comparações são sempre
// entre datas ISO (lexicográficas), evitando erros de fuso horário.
const DateLayout = "2006-01-02"

// StockEntry representa um evento de entrada de estoque (compra/recebimento).
// Imutável após a criação: não há operações de atualização ou exclusão.
type StockEntry struct {
	ID         string    `json:"id"`
	Product    string    `json:"product"` // Referencia Product.Code, não o ID
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"` // Preço pago ao fornecedor
	Supplier   string    `json:"supplier"`
	InvoiceRef string    `json:"invoice_ref"`
	Date       string    `json:"date"` // Data de calendário, formato DateLayout
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// StockExit representa um evento de saída de estoque (venda ou serviço).
// Imutável após a criação.
type StockExit struct {
	ID        string    `json:"id"`
	Product   string    `json:"product"`
	Quantity  int       `json:"quantity"`
	Kind      ExitKind  `json:"kind"`
	Customer  string    `json:"customer"`
	UnitPrice float64   `json:"unit_price"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ExitKind é o tipo enumerado de saída de estoque.
type ExitKind string

// Constantes para os tipos de saída.
const (
	ExitSale         ExitKind = "venda"
	ExitMedication   ExitKind = "medicamento"
	ExitGrooming     ExitKind = "banho"
	ExitConsultation ExitKind = "consulta"
)

// exitKindLabels mapeia cada tipo de saída para o rótulo de exibição.
var exitKindLabels = map[ExitKind]string{
	ExitSale:         "Venda",
	ExitMedication:   "Medicamento",
	ExitGrooming:     "Banho e Tosa",
	ExitConsultation: "Consulta Veterinária",
}

// Label retorna o rótulo de exibição do tipo de saída.
func (k ExitKind) Label() string {
	if label, ok := exitKindLabels[k]; ok {
		return label
	}
	return string(k)
}

// ValidExitKind informa se o tipo é uma das constantes conhecidas.
func ValidExitKind(k ExitKind) bool {
	_, ok := exitKindLabels[k]
	return ok
}

// DateRange define o filtro opcional de período para listagem de movimentações.
// Strings vazias significam "sem limite". Limites são inclusivos.
type DateRange struct {
	From string
	To   string
}

// EntryRepository define o contrato de persistência para entradas de estoque.
// FindAll retorna as entradas ordenadas por data decrescente.
type EntryRepository interface {
	Save(ctx context.Context, entry StockEntry) (StockEntry, error)
	FindAll(ctx context.Context, dateRange DateRange) ([]StockEntry, error)
}

// ExitRepository define o contrato de persistência para saídas de estoque.
// FindAll retorna as saídas ordenadas por data decrescente.
type ExitRepository interface {
	Save(ctx context.Context, exit StockExit) (StockExit, error)
	FindAll(ctx context.Context, dateRange DateRange) ([]StockExit, error)
}
