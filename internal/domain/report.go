package domain

// Snapshot é a visão consistente de entradas e saídas capturada pelo chamador
// antes de qualquer cálculo derivado. As funções puras do núcleo recebem o
// Snapshot pronto e nunca consultam o gateway durante a computação.
type Snapshot struct {
	Entries []StockEntry
	Exits   []StockExit
}

// MonthlyReport agrega as movimentações de um mês de calendário.
type MonthlyReport struct {
	Entries          []StockEntry     `json:"entries"`
	Exits            []StockExit      `json:"exits"`
	TotalEntryCost   float64          `json:"total_entry_cost"`
	TotalExitRevenue float64          `json:"total_exit_revenue"`
	KindCounts       map[ExitKind]int `json:"kind_counts"`
	Period           string           `json:"period"` // Formato "M/AAAA" (ex: "9/2025")
}

// DashboardSummary é a visão derivada exibida na tela inicial.
// Não é persistida: é recalculada a partir de um Snapshot do mês corrente.
type DashboardSummary struct {
	TotalProducts  int            `json:"total_products"`
	EntriesMonth   int            `json:"entries_month"`
	ExitsMonth     int            `json:"exits_month"`
	MonthlyRevenue float64        `json:"monthly_revenue"`
	RecentActivity []ActivityItem `json:"recent_activity"`
}

// ActivityItem é um item do feed de atividades recentes do dashboard.
type ActivityItem struct {
	Type        string `json:"type"` // "entrada" ou "saida"
	ProductName string `json:"product_name"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// StockRow é o view-model de uma linha da tela de estoque.
// O núcleo nunca produz marcação: a camada de apresentação renderiza as linhas.
type StockRow struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	Label        string   `json:"category_label"`
	Quantity     int      `json:"quantity"`
	UnitPrice    float64  `json:"unit_price"`
	MinimumStock int      `json:"minimum_stock"`
	LowStock     bool     `json:"low_stock"`
}
