package catalog

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Filter returns the items whose title or author fuzzily matches q, best matches first.
// An empty query returns items unchanged.
func Filter(items []*Item, q string) []*Item {
	q = strings.TrimSpace(q)
	if q == "" {
		return items
	}

	targets := lo.Map(items, func(item *Item, _ int) string {
		return item.FilterValue()
	})

	ranks := fuzzy.RankFindNormalizedFold(q, targets)
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		return a.OriginalIndex - b.OriginalIndex
	})

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) *Item {
		return items[r.OriginalIndex]
	})
}
