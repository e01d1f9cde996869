package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"petbela/internal/domain"
)

// FieldErrors mapeia nome do campo para a mensagem a exibir junto ao formulário.
// Mapa vazio/nulo significa validação aprovada.
type FieldErrors map[string]string

// ProductForm carrega os valores brutos (strings) do formulário de produto,
// exatamente como a camada de apresentação os fornece.
type ProductForm struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	UnitPrice    string `json:"unit_price"`
	MinimumStock string `json:"minimum_stock"`
}

// MovementForm carrega os valores brutos do formulário de entrada ou saída.
// Supplier/InvoiceRef são usados apenas em entradas; Kind/Customer apenas em saídas.
type MovementForm struct {
	Product    string `json:"product"`
	Quantity   string `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	Supplier   string `json:"supplier"`
	InvoiceRef string `json:"invoice_ref"`
	Kind       string `json:"kind"`
	Customer   string `json:"customer"`
	Date       string `json:"date"`
	Notes      string `json:"notes"`
}

// ValidateProduct valida o formulário de produto contra os produtos existentes
// e retorna a entidade pronta para persistir ou os erros por campo.
//
// Regras: código e nome obrigatórios (após trim); código único entre os
// produtos existentes, excluindo o registro em edição (editingID); categoria
// deve ser uma das conhecidas. Preço e estoque mínimo em branco ou não
// numéricos assumem 0 — regra de substituição de padrão documentada e
// deliberada, não um parse silencioso; apenas valores negativos são rejeitados.
func ValidateProduct(form ProductForm, existing []domain.Product, editingID string) (domain.Product, FieldErrors) {
	fields := FieldErrors{}

	code := strings.TrimSpace(form.Code)
	name := strings.TrimSpace(form.Name)

	if code == "" {
		fields["code"] = "Código é obrigatório."
	}
	if name == "" {
		fields["name"] = "Nome é obrigatório."
	}

	if code != "" {
		for _, product := range existing {
			if product.Code == code && product.ID != editingID {
				fields["code"] = "Já existe um produto com este código."
				break
			}
		}
	}

	category := domain.Category(strings.TrimSpace(form.Category))
	if !domain.ValidCategory(category) {
		fields["category"] = "Categoria inválida."
	}

	unitPrice := parseDecimalInput(form.UnitPrice)
	if unitPrice < 0 {
		fields["unit_price"] = "Preço não pode ser negativo."
	}

	minimumStock := parseIntInput(form.MinimumStock)
	if minimumStock < 0 {
		fields["minimum_stock"] = "Estoque mínimo não pode ser negativo."
	}

	if len(fields) > 0 {
		return domain.Product{}, fields
	}

	return domain.Product{
		Code:         code,
		Name:         name,
		Category:     category,
		UnitPrice:    unitPrice,
		MinimumStock: minimumStock,
	}, nil
}

// ValidateEntry valida o formulário de entrada de estoque.
// Produto obrigatório; quantidade inteira estritamente positiva; preço
// não negativo (em branco assume 0); data de calendário válida.
func ValidateEntry(form MovementForm) (domain.StockEntry, FieldErrors) {
	fields := FieldErrors{}

	product, quantity, unitPrice, date := validateMovementBase(form, fields)

	if len(fields) > 0 {
		return domain.StockEntry{}, fields
	}

	return domain.StockEntry{
		Product:    product,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Supplier:   strings.TrimSpace(form.Supplier),
		InvoiceRef: strings.TrimSpace(form.InvoiceRef),
		Date:       date,
		Notes:      strings.TrimSpace(form.Notes),
	}, nil
}

// ValidateExit valida o formulário de saída de estoque. Além das regras comuns
// de movimentação, o tipo de saída deve ser conhecido e a quantidade não pode
// exceder a quantidade em mãos informada por available — a violação reporta a
// quantidade disponível exata na mensagem, para o chamador exibir ao usuário.
//
// A checagem usa a quantidade ANTES da nova saída ser aplicada: nenhuma saída
// pode tornar o saldo derivado negativo.
func ValidateExit(form MovementForm, available func(productCode string) int) (domain.StockExit, FieldErrors) {
	fields := FieldErrors{}

	product, quantity, unitPrice, date := validateMovementBase(form, fields)

	kind := domain.ExitKind(strings.TrimSpace(form.Kind))
	if !domain.ValidExitKind(kind) {
		fields["kind"] = "Tipo de saída inválido."
	}

	if product != "" && quantity > 0 && available != nil {
		if onHand := available(product); quantity > onHand {
			fields["quantity"] = fmt.Sprintf("Quantidade insuficiente em estoque! Disponível: %d", onHand)
		}
	}

	if len(fields) > 0 {
		return domain.StockExit{}, fields
	}

	return domain.StockExit{
		Product:   product,
		Quantity:  quantity,
		Kind:      kind,
		Customer:  strings.TrimSpace(form.Customer),
		UnitPrice: unitPrice,
		Date:      date,
		Notes:     strings.TrimSpace(form.Notes),
	}, nil
}

// validateMovementBase aplica as regras comuns a entradas e saídas, acumulando
// erros em fields e retornando os valores já convertidos.
func validateMovementBase(form MovementForm, fields FieldErrors) (product string, quantity int, unitPrice float64, date string) {
	product = strings.TrimSpace(form.Product)
	if product == "" {
		fields["product"] = "Produto é obrigatório."
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(form.Quantity))
	if err != nil || quantity <= 0 {
		fields["quantity"] = "Quantidade deve ser um inteiro positivo."
	}

	unitPrice = parseDecimalInput(form.UnitPrice)
	if unitPrice < 0 {
		fields["unit_price"] = "Preço não pode ser negativo."
	}

	date = strings.TrimSpace(form.Date)
	if _, parseErr := time.Parse(domain.DateLayout, date); parseErr != nil {
		fields["date"] = "Data inválida. Use o formato AAAA-MM-DD."
	}

	return product, quantity, unitPrice, date
}

// parseDecimalInput converte a entrada numérica do formulário.
// Entrada em branco ou não numérica assume 0 (substituição de padrão);
// valores negativos são devolvidos como estão para o chamador rejeitar.
func parseDecimalInput(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

// parseIntInput é o equivalente inteiro de parseDecimalInput.
func parseIntInput(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}
