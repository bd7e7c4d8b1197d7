package search

import (
	"sort"
	"strings"

	"github.com/comicdex/comicdex/pkg/errcodes"
	"github.com/comicdex/comicdex/pkg/models"
)

// SortStrategy reorders a result set. Implementations must be stable so
// that comics comparing equal keep their relative candidate order.
type SortStrategy interface {
	// Sort returns a sorted copy; the input slice is never mutated.
	Sort(comics []*models.Comic) []*models.Comic
	// Name is the identifier clients use to request the strategy.
	Name() string
}

// AlphabeticalSort orders comics by title, case-insensitively.
type AlphabeticalSort struct {
	Descending bool
}

func (s AlphabeticalSort) Sort(comics []*models.Comic) []*models.Comic {
	sorted := make([]*models.Comic, len(comics))
	copy(sorted, comics)

	sort.SliceStable(sorted, func(i, j int) bool {
		a := strings.ToLower(sorted[i].Title)
		b := strings.ToLower(sorted[j].Title)
		if s.Descending {
			return a > b
		}
		return a < b
	})
	return sorted
}

func (s AlphabeticalSort) Name() string {
	if s.Descending {
		return "alphabetical_desc"
	}
	return "alphabetical_asc"
}

var sortStrategies = map[string]SortStrategy{}

// RegisterSortStrategy adds a strategy to the registry, replacing any
// previous strategy with the same name.
func RegisterSortStrategy(s SortStrategy) {
	sortStrategies[s.Name()] = s
}

// SortStrategyFor looks up a strategy by name. Unknown names are an error;
// there is deliberately no fallback strategy.
func SortStrategyFor(name string) (SortStrategy, error) {
	s, ok := sortStrategies[name]
	if !ok {
		return nil, errcodes.UnknownStrategy("sort", name)
	}
	return s, nil
}

func init() {
	RegisterSortStrategy(AlphabeticalSort{})
	RegisterSortStrategy(AlphabeticalSort{Descending: true})
}
