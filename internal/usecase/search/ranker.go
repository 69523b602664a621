package search

import (
	"sort"

	"github.com/meublia-cloud/furndex/internal/domain/search/result"
)

// rank sorts results by score descending and truncates to limit. The sort
// must be stable: equal-score results keep their retrieval order.
func rank(results []result.Result, limit int) []result.Result {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
