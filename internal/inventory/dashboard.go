package inventory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"petbela/internal/domain"
)

// recentPerSide limita quantos itens de cada lado (entradas/saídas) entram no
// feed antes da mesclagem; feedLimit limita o feed final.
const (
	recentPerSide = 5
	feedLimit     = 10
)

// Dashboard produz o resumo derivado da tela inicial para o mês informado:
// contagem de entradas e saídas do mês, faturamento mensal (Σ preço × qtd das
// saídas do mês) e o feed de atividades recentes sobre o Snapshot completo.
func Dashboard(year int, month time.Month, products []domain.Product, snapshot domain.Snapshot) domain.DashboardSummary {
	from, to := MonthRange(year, month)

	summary := domain.DashboardSummary{
		TotalProducts:  len(products),
		RecentActivity: RecentActivity(products, snapshot),
	}

	for _, entry := range snapshot.Entries {
		if inRange(entry.Date, from, to) {
			summary.EntriesMonth++
		}
	}
	for _, exit := range snapshot.Exits {
		if inRange(exit.Date, from, to) {
			summary.ExitsMonth++
			summary.MonthlyRevenue += exit.UnitPrice * float64(nonNegative(exit.Quantity))
		}
	}

	return summary
}

// activityRecord é o par (item, carimbo de criação) usado na ordenação do feed.
type activityRecord struct {
	item      domain.ActivityItem
	createdAt time.Time
}

// RecentActivity mescla as 5 entradas e as 5 saídas mais recentes em um único
// feed ordenado por data decrescente e truncado a 10 itens.
//
// Desempate para datas iguais (regra determinística, não definida na origem):
// carimbo de criação decrescente; persistindo o empate, entradas antes de
// saídas (ordem de inserção na mesclagem, preservada pelo sort estável).
func RecentActivity(products []domain.Product, snapshot domain.Snapshot) []domain.ActivityItem {
	records := make([]activityRecord, 0, 2*recentPerSide)

	for _, entry := range topEntries(snapshot.Entries) {
		records = append(records, activityRecord{
			item: domain.ActivityItem{
				Type:        "entrada",
				ProductName: ProductName(entry.Product, products),
				Description: fmt.Sprintf("Entrada: %s (%d unidades)", ProductName(entry.Product, products), entry.Quantity),
				Date:        entry.Date,
			},
			createdAt: entry.CreatedAt,
		})
	}

	for _, exit := range topExits(snapshot.Exits) {
		records = append(records, activityRecord{
			item: domain.ActivityItem{
				Type:        "saida",
				ProductName: ProductName(exit.Product, products),
				Description: fmt.Sprintf("Saída: %s - %s", ProductName(exit.Product, products), exit.Kind.Label()),
				Date:        exit.Date,
			},
			createdAt: exit.CreatedAt,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].item.Date != records[j].item.Date {
			return records[i].item.Date > records[j].item.Date
		}
		return records[i].createdAt.After(records[j].createdAt)
	})

	if len(records) > feedLimit {
		records = records[:feedLimit]
	}

	feed := make([]domain.ActivityItem, len(records))
	for i, record := range records {
		feed[i] = record.item
	}
	return feed
}

// topEntries retorna as até 5 entradas mais recentes (data decrescente,
// criação decrescente no empate), sem depender da ordenação do gateway.
func topEntries(entries []domain.StockEntry) []domain.StockEntry {
	sorted := make([]domain.StockEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > recentPerSide {
		sorted = sorted[:recentPerSide]
	}
	return sorted
}

// topExits retorna as até 5 saídas mais recentes, mesma regra de topEntries.
func topExits(exits []domain.StockExit) []domain.StockExit {
	sorted := make([]domain.StockExit, len(exits))
	copy(sorted, exits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > recentPerSide {
		sorted = sorted[:recentPerSide]
	}
	return sorted
}

// ProductName resolve o código de produto para o nome de exibição.
// Movimentações que referenciam um produto excluído são toleradas: o código
// bruto é exibido no lugar do nome (referência "dangling-safe", não erro).
func ProductName(code string, products []domain.Product) string {
	for _, product := range products {
		if product.Code == code {
			return product.Name
		}
	}
	return code
}

// StockRows produz o view-model da tela de estoque: uma linha por produto com
// a quantidade derivada e o status de estoque baixo (quantidade ≤ mínimo).
// search filtra por nome ou código (caso-insensitivo) e category por categoria
// exata; ambos vazios significam "sem filtro". O núcleo nunca produz marcação.
func StockRows(products []domain.Product, snapshot domain.Snapshot, search string, category domain.Category) []domain.StockRow {
	quantities := QuantityMap(snapshot)
	term := strings.ToLower(strings.TrimSpace(search))

	rows := make([]domain.StockRow, 0, len(products))
	for _, product := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(product.Name), term) &&
			!strings.Contains(strings.ToLower(product.Code), term) {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}

		quantity := quantities[product.Code]
		rows = append(rows, domain.StockRow{
			Code:         product.Code,
			Name:         product.Name,
			Category:     product.Category,
			Label:        product.Category.Label(),
			Quantity:     quantity,
			UnitPrice:    product.UnitPrice,
			MinimumStock: product.MinimumStock,
			LowStock:     quantity <= product.MinimumStock,
		})
	}
	return rows
}
