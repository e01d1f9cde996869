package inventory_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"petbela/internal/domain"
	"petbela/internal/inventory"
)

// TestDashboard_Success_MonthCountsAndRevenue testa as contagens do mês e o
// faturamento mensal do resumo.
func TestDashboard_Success_MonthCountsAndRevenue(t *testing.T) {
	products := []domain.Product{
		{Code: "MED001", Name: "Vermífugo Canino"},
		{Code: "RAC001", Name: "Ração Premium 15kg"},
	}
	snapshot := domain.Snapshot{
		Entries: []domain.StockEntry{
			{Product: "MED001", Quantity: 50, Date: "2025-09-02"},
			{Product: "RAC001", Quantity: 30, Date: "2025-08-15"}, // Mês anterior: fora da contagem
		},
		Exits: []domain.StockExit{
			{Product: "MED001", Quantity: 2, UnitPrice: 25.0, Kind: domain.ExitSale, Date: "2025-09-10"},
			{Product: "RAC001", Quantity: 1, UnitPrice: 120.0, Kind: domain.ExitSale, Date: "2025-09-18"},
		},
	}

	summary := inventory.Dashboard(2025, time.September, products, snapshot)

	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, 1, summary.EntriesMonth)
	assert.Equal(t, 2, summary.ExitsMonth)
	assert.Equal(t, 170.0, summary.MonthlyRevenue) // 2*25 + 1*120
}

// TestRecentActivity_Success_MergedAndSorted testa a mesclagem de entradas e
// saídas em um único feed ordenado por data decrescente.
func TestRecentActivity_Success_MergedAndSorted(t *testing.T) {
	products := []domain.Product{
		{Code: "MED001", Name: "Vermífugo Canino"},
	}
	snapshot := domain.Snapshot{
		Entries: []domain.StockEntry{
			{Product: "MED001", Quantity: 50, Date: "2025-09-01"},
		},
		Exits: []domain.StockExit{
			{Product: "MED001", Quantity: 2, Kind: domain.ExitSale, Date: "2025-09-10"},
		},
	}

	feed := inventory.RecentActivity(products, snapshot)

	assert.Len(t, feed, 2)
	assert.Equal(t, "saida", feed[0].Type) // Mais recente primeiro
	assert.Equal(t, "entrada", feed[1].Type)
	assert.Equal(t, "Vermífugo Canino", feed[0].ProductName)
	assert.Equal(t, "Entrada: Vermífugo Canino (50 unidades)", feed[1].Description)
}

// TestRecentActivity_Success_FivePerSideThenTen testa o limite em duas fases:
// até 5 de cada lado antes da mesclagem e no máximo 10 no feed final.
func TestRecentActivity_Success_FivePerSideThenTen(t *testing.T) {
	var entries []domain.StockEntry
	var exits []domain.StockExit
	for i := 1; i <= 7; i++ {
		entries = append(entries, domain.StockEntry{
			Product:  "MED001",
			Quantity: i,
			Date:     fmt.Sprintf("2025-09-%02d", i),
		})
		exits = append(exits, domain.StockExit{
			Product:  "MED001",
			Quantity: i,
			Kind:     domain.ExitSale,
			Date:     fmt.Sprintf("2025-09-%02d", i+10),
		})
	}

	feed := inventory.RecentActivity(nil, domain.Snapshot{Entries: entries, Exits: exits})

	// 7 entradas e 7 saídas viram 5 + 5 na mesclagem, truncadas a 10.
	assert.Len(t, feed, 10)

	// O feed está em ordem de data decrescente.
	for i := 1; i < len(feed); i++ {
		assert.GreaterOrEqual(t, feed[i-1].Date, feed[i].Date)
	}

	// As 5 saídas mais recentes (datas 13..17) vêm antes das entradas (03..07).
	assert.Equal(t, "saida", feed[0].Type)
	assert.Equal(t, "2025-09-17", feed[0].Date)
}

// TestRecentActivity_Success_TieBreakByCreatedAt testa o desempate em datas
// iguais: carimbo de criação mais recente primeiro.
func TestRecentActivity_Success_TieBreakByCreatedAt(t *testing.T) {
	older := time.Date(2025, 9, 10, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 9, 10, 17, 0, 0, 0, time.UTC)

	snapshot := domain.Snapshot{
		Entries: []domain.StockEntry{
			{Product: "A", Quantity: 1, Date: "2025-09-10", CreatedAt: older},
		},
		Exits: []domain.StockExit{
			{Product: "B", Quantity: 1, Kind: domain.ExitSale, Date: "2025-09-10", CreatedAt: newer},
		},
	}

	feed := inventory.RecentActivity(nil, snapshot)

	assert.Len(t, feed, 2)
	assert.Equal(t, "saida", feed[0].Type) // Criada mais tarde no mesmo dia
	assert.Equal(t, "entrada", feed[1].Type)
}

// TestProductName_Success_FallbackToCode testa a tolerância a referências de
// produto excluído: o código bruto é exibido no lugar do nome.
func TestProductName_Success_FallbackToCode(t *testing.T) {
	products := []domain.Product{
		{Code: "MED001", Name: "Vermífugo Canino"},
	}

	assert.Equal(t, "Vermífugo Canino", inventory.ProductName("MED001", products))
	assert.Equal(t, "EXCLUIDO01", inventory.ProductName("EXCLUIDO01", products))
}

// TestStockRows_Success_QuantitiesAndLowStock testa as linhas da tela de
// estoque: quantidade derivada e status de estoque baixo (qtd <= mínimo).
func TestStockRows_Success_QuantitiesAndLowStock(t *testing.T) {
	products := []domain.Product{
		{Code: "MED001", Name: "Vermífugo Canino", Category: domain.CategoryMedication, UnitPrice: 25.0, MinimumStock: 10},
		{Code: "RAC001", Name: "Ração Premium 15kg", Category: domain.CategoryFeed, UnitPrice: 120.0, MinimumStock: 3},
	}
	snapshot := domain.Snapshot{
		Entries: []domain.StockEntry{
			{Product: "MED001", Quantity: 12},
			{Product: "RAC001", Quantity: 5},
		},
		Exits: []domain.StockExit{
			{Product: "MED001", Quantity: 2, Kind: domain.ExitSale},
		},
	}

	rows := inventory.StockRows(products, snapshot, "", "")

	assert.Len(t, rows, 2)
	assert.Equal(t, 10, rows[0].Quantity)
	assert.True(t, rows[0].LowStock) // 10 <= 10: no limite conta como baixo
	assert.Equal(t, "Medicamentos", rows[0].Label)
	assert.Equal(t, 5, rows[1].Quantity)
	assert.False(t, rows[1].LowStock) // 5 > 3: acima do mínimo
}

// TestStockRows_Success_SearchAndCategoryFilters testa os filtros de busca
// (caso-insensitivo, nome ou código) e de categoria.
func TestStockRows_Success_SearchAndCategoryFilters(t *testing.T) {
	products := []domain.Product{
		{Code: "MED001", Name: "Vermífugo Canino", Category: domain.CategoryMedication},
		{Code: "RAC001", Name: "Ração Premium 15kg", Category: domain.CategoryFeed},
		{Code: "BRI001", Name: "Bola de Borracha", Category: domain.CategoryToy},
	}
	snapshot := domain.Snapshot{}

	// Busca por fragmento de nome, caso-insensitivo.
	rows := inventory.StockRows(products, snapshot, "premium", "")
	assert.Len(t, rows, 1)
	assert.Equal(t, "RAC001", rows[0].Code)

	// Busca por fragmento de código.
	rows = inventory.StockRows(products, snapshot, "med0", "")
	assert.Len(t, rows, 1)
	assert.Equal(t, "MED001", rows[0].Code)

	// Filtro de categoria exata.
	rows = inventory.StockRows(products, snapshot, "", domain.CategoryToy)
	assert.Len(t, rows, 1)
	assert.Equal(t, "BRI001", rows[0].Code)

	// Sem correspondência: lista vazia, nunca erro.
	rows = inventory.StockRows(products, snapshot, "inexistente", "")
	assert.Len(t, rows, 0)
}
