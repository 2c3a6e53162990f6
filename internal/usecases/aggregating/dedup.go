package aggregating

import "github.com/vfg2006/ad-revenue-api/internal/domain"

// Dedup funde linhas que colidem na chave dimensional somando os contadores e
// recalculando as taxas ponderadas. Linhas sem colisão são devolvidas intactas,
// então aplicar Dedup duas vezes produz o mesmo resultado.
func Dedup(rows []domain.DimensionalRow) []domain.DimensionalRow {
	if len(rows) < 2 {
		return rows
	}

	index := make(map[domain.DimensionKey]int, len(rows))
	merged := make([]domain.DimensionalRow, 0, len(rows))
	sums := make(map[int]*counters)

	for i := range rows {
		row := &rows[i]
		key := row.Key()

		pos, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, *row)
			continue
		}

		acc, ok := sums[pos]
		if !ok {
			first := countersFromRow(&merged[pos])
			acc = &first
			sums[pos] = acc
		}
		acc.add(countersFromRow(row))
	}

	for pos, acc := range sums {
		applyToRow(&merged[pos], *acc)
	}

	return merged
}
