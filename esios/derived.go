package esios

import (
	"github.com/javisen/esios-go/types"
)

// ExpandKeys resolves a requested indicator set to the upstream series
// needed to compute it, in catalog order. Derived indicators fan out to
// their inputs (INDEXED needs both PVPC and ADJUSTMENT); keys not in the
// catalog are dropped.
func ExpandKeys(keys []string) []string {
	requested := make(map[string]bool, len(keys))
	for _, key := range keys {
		for _, dep := range requiredSeries[key] {
			requested[dep] = true
		}
	}

	var expanded []string
	for _, key := range AllIndicators {
		if requested[key] {
			expanded = append(expanded, key)
		}
	}
	return expanded
}

// DeriveIndexed computes the indexed-tariff series as the hourly sum of
// the consumer price and the market adjustment, over the hours present in
// both inputs.
func DeriveIndexed(pvpc, adjustment types.Series) types.Series {
	indexed := make(types.Series)
	for dh, price := range pvpc {
		adj, ok := adjustment[dh]
		if !ok {
			continue
		}
		indexed[dh] = price + adj
	}
	return indexed
}
