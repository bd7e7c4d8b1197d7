package search

import (
	"github.com/comicdex/comicdex/pkg/errcodes"
	"github.com/comicdex/comicdex/pkg/models"
)

// UnknownGroupKey is the bucket for comics missing the grouping field.
const UnknownGroupKey = "Unknown"

// Group is one bucket of a grouped result set. Comics keep the order they
// had going in, so sorting before grouping sorts within every group.
type Group struct {
	Key    string          `json:"key"`
	Comics []*models.Comic `json:"comics"`
}

// GroupStrategy partitions a result set into keyed buckets. A comic with
// several key values lands in each matching bucket; one with none lands in
// the UnknownGroupKey bucket. Keys appear in first-seen order.
type GroupStrategy interface {
	Group(comics []*models.Comic) []Group
	// Name is the identifier clients use to request the strategy.
	Name() string
}

func groupByKeys(comics []*models.Comic, keysOf func(*models.Comic) []string) []Group {
	order := []string{}
	byKey := map[string][]*models.Comic{}

	add := func(key string, comic *models.Comic) {
		if _, ok := byKey[key]; !ok {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], comic)
	}

	for _, comic := range comics {
		keys := keysOf(comic)
		if len(keys) == 0 {
			add(UnknownGroupKey, comic)
			continue
		}
		for _, key := range keys {
			add(key, comic)
		}
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{Key: key, Comics: byKey[key]})
	}
	return groups
}

// AuthorGroupStrategy buckets comics by author; a comic with several
// authors appears under each of them.
type AuthorGroupStrategy struct{}

func (AuthorGroupStrategy) Group(comics []*models.Comic) []Group {
	return groupByKeys(comics, func(c *models.Comic) []string { return c.Authors })
}

func (AuthorGroupStrategy) Name() string { return "author" }

// YearGroupStrategy buckets comics by publication year; a comic with
// several years appears under each of them.
type YearGroupStrategy struct{}

func (YearGroupStrategy) Group(comics []*models.Comic) []Group {
	return groupByKeys(comics, func(c *models.Comic) []string { return c.PublicationYears })
}

func (YearGroupStrategy) Name() string { return "year" }

var groupStrategies = map[string]GroupStrategy{}

// RegisterGroupStrategy adds a strategy to the registry, replacing any
// previous strategy with the same name.
func RegisterGroupStrategy(s GroupStrategy) {
	groupStrategies[s.Name()] = s
}

// GroupStrategyFor looks up a strategy by name. Unknown names are an
// error; there is deliberately no fallback strategy.
func GroupStrategyFor(name string) (GroupStrategy, error) {
	s, ok := groupStrategies[name]
	if !ok {
		return nil, errcodes.UnknownStrategy("group", name)
	}
	return s, nil
}

func init() {
	RegisterGroupStrategy(AuthorGroupStrategy{})
	RegisterGroupStrategy(YearGroupStrategy{})
}
