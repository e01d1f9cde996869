// Package inventory contém o núcleo de cálculo do estoque: funções puras que
// derivam quantidade em mãos, relatórios mensais e o resumo do dashboard a
// partir de um Snapshot já capturado pelo chamador. Nenhuma função deste
// pacote consulta o gateway de persistência ou mantém estado entre chamadas.
package inventory

import (
	"petbela/internal/domain"
)

// CurrentQuantity deriva a quantidade em mãos de um produto: soma de todas as
// entradas com o código informado menos a soma de todas as saídas, com piso em
// zero (nunca negativa, mesmo com histórico inconsistente).
//
// Código desconhecido resulta em zero entradas e zero saídas, logo quantidade 0.
// Quantidades ausentes ou negativas em registros malformados contam como 0.
func CurrentQuantity(productCode string, entries []domain.StockEntry, exits []domain.StockExit) int {
	totalEntries := 0
	for _, entry := range entries {
		if entry.Product == productCode {
			totalEntries += nonNegative(entry.Quantity)
		}
	}

	totalExits := 0
	for _, exit := range exits {
		if exit.Product == productCode {
			totalExits += nonNegative(exit.Quantity)
		}
	}

	if totalEntries <= totalExits {
		return 0
	}
	return totalEntries - totalExits
}

// QuantityMap deriva a quantidade em mãos de todos os produtos referenciados
// no Snapshot em uma única passada sobre as duas coleções (O(n) total, em vez
// de O(n·p) ao chamar CurrentQuantity por produto).
//
// O saldo líquido de cada código recebe piso em zero, como em CurrentQuantity.
func QuantityMap(snapshot domain.Snapshot) map[string]int {
	net := make(map[string]int)

	for _, entry := range snapshot.Entries {
		net[entry.Product] += nonNegative(entry.Quantity)
	}
	for _, exit := range snapshot.Exits {
		net[exit.Product] -= nonNegative(exit.Quantity)
	}

	for code, quantity := range net {
		if quantity < 0 {
			net[code] = 0
		}
	}
	return net
}

// nonNegative aplica o padrão defensivo do cálculo: quantidade malformada
// (negativa) conta como 0, nunca como erro.
func nonNegative(quantity int) int {
	if quantity < 0 {
		return 0
	}
	return quantity
}
