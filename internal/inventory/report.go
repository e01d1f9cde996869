package inventory

import (
	"fmt"
	"time"

	"petbela/internal/domain"
)

// MonthRange calcula os limites inclusivos de um mês de calendário no formato
// domain.DateLayout. O último dia é obtido por aritmética de calendário
// (time.Date normaliza o dia 0 do mês seguinte), cobrindo meses de tamanho
// variável e anos bissextos sem tabela fixa.
func MonthRange(year int, month time.Month) (from, to string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return first.Format(domain.DateLayout), last.Format(domain.DateLayout)
}

// inRange verifica se uma data de calendário pertence ao período inclusivo.
// Datas são strings ISO (AAAA-MM-DD): a comparação lexicográfica equivale à
// comparação de calendário e não sofre deslocamento de fuso horário.
func inRange(date, from, to string) bool {
	return date >= from && date <= to
}

// MonthlyReport filtra as movimentações do Snapshot que caem no mês de
// calendário informado (limites inclusivos) e computa os totais do período:
// custo total de entradas, faturamento total de saídas e contagem de saídas
// por tipo. Conjuntos vazios produzem totais zero, nunca erro.
func MonthlyReport(year int, month time.Month, snapshot domain.Snapshot) domain.MonthlyReport {
	from, to := MonthRange(year, month)

	report := domain.MonthlyReport{
		Entries:    []domain.StockEntry{},
		Exits:      []domain.StockExit{},
		KindCounts: make(map[domain.ExitKind]int),
		Period:     fmt.Sprintf("%d/%d", int(month), year),
	}

	for _, entry := range snapshot.Entries {
		if inRange(entry.Date, from, to) {
			report.Entries = append(report.Entries, entry)
			report.TotalEntryCost += entry.UnitPrice * float64(nonNegative(entry.Quantity))
		}
	}

	for _, exit := range snapshot.Exits {
		if inRange(exit.Date, from, to) {
			report.Exits = append(report.Exits, exit)
			report.TotalExitRevenue += exit.UnitPrice * float64(nonNegative(exit.Quantity))
			report.KindCounts[exit.Kind]++
		}
	}

	return report
}
