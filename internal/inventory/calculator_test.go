package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"petbela/internal/domain"
	"petbela/internal/inventory"
)

// TestCurrentQuantity_Success_EntriesMinusExits testa a derivação básica:
// 50 entradas e 2 saídas resultam em 48 unidades em mãos.
func TestCurrentQuantity_Success_EntriesMinusExits(t *testing.T) {
	entries := []domain.StockEntry{
		{Product: "MED001", Quantity: 50, Date: "2025-09-01"},
	}
	exits := []domain.StockExit{
		{Product: "MED001", Quantity: 2, Kind: domain.ExitSale, Date: "2025-09-10"},
	}

	quantity := inventory.CurrentQuantity("MED001", entries, exits)

	assert.Equal(t, 48, quantity)
}

// TestCurrentQuantity_Success_IgnoresOtherProducts testa que movimentações de
// outros códigos não afetam o cálculo.
func TestCurrentQuantity_Success_IgnoresOtherProducts(t *testing.T) {
	entries := []domain.StockEntry{
		{Product: "MED001", Quantity: 10},
		{Product: "RAC001", Quantity: 100},
	}
	exits := []domain.StockExit{
		{Product: "RAC001", Quantity: 30, Kind: domain.ExitSale},
	}

	assert.Equal(t, 10, inventory.CurrentQuantity("MED001", entries, exits))
	assert.Equal(t, 70, inventory.CurrentQuantity("RAC001", entries, exits))
}

// TestCurrentQuantity_Success_FloorsAtZero testa o piso em zero quando o
// histórico registra mais saídas do que entradas.
func TestCurrentQuantity_Success_FloorsAtZero(t *testing.T) {
	entries := []domain.StockEntry{
		{Product: "MED001", Quantity: 5},
	}
	exits := []domain.StockExit{
		{Product: "MED001", Quantity: 9, Kind: domain.ExitSale},
	}

	assert.Equal(t, 0, inventory.CurrentQuantity("MED001", entries, exits))
}

// TestCurrentQuantity_Success_UnknownCode testa que um código sem movimentações
// resulta em quantidade zero, sem erro.
func TestCurrentQuantity_Success_UnknownCode(t *testing.T) {
	assert.Equal(t, 0, inventory.CurrentQuantity("INEXISTENTE", nil, nil))
}

// TestCurrentQuantity_Success_NegativeQuantitiesCountAsZero testa que registros
// malformados com quantidade negativa contam como 0, nunca como erro.
func TestCurrentQuantity_Success_NegativeQuantitiesCountAsZero(t *testing.T) {
	entries := []domain.StockEntry{
		{Product: "MED001", Quantity: 10},
		{Product: "MED001", Quantity: -7},
	}
	exits := []domain.StockExit{
		{Product: "MED001", Quantity: -3, Kind: domain.ExitSale},
	}

	assert.Equal(t, 10, inventory.CurrentQuantity("MED001", entries, exits))
}

// TestQuantityMap_Success_SinglePass testa a derivação de todos os saldos em
// uma única passada, com o mesmo piso em zero de CurrentQuantity.
func TestQuantityMap_Success_SinglePass(t *testing.T) {
	snapshot := domain.Snapshot{
		Entries: []domain.StockEntry{
			{Product: "MED001", Quantity: 50},
			{Product: "RAC001", Quantity: 20},
			{Product: "BRI001", Quantity: 3},
		},
		Exits: []domain.StockExit{
			{Product: "MED001", Quantity: 2, Kind: domain.ExitMedication},
			{Product: "BRI001", Quantity: 8, Kind: domain.ExitSale},
		},
	}

	quantities := inventory.QuantityMap(snapshot)

	assert.Equal(t, 48, quantities["MED001"])
	assert.Equal(t, 20, quantities["RAC001"])
	assert.Equal(t, 0, quantities["BRI001"]) // Piso em zero
	assert.Equal(t, 0, quantities["INEXISTENTE"])
}

// TestQuantityMap_Success_EmptySnapshot testa que um Snapshot vazio produz um
// mapa vazio, sem erro.
func TestQuantityMap_Success_EmptySnapshot(t *testing.T) {
	quantities := inventory.QuantityMap(domain.Snapshot{})

	assert.NotNil(t, quantities)
	assert.Len(t, quantities, 0)
}
