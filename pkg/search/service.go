package search

import (
	"context"
	"strings"

	"github.com/comicdex/comicdex/pkg/comics"
	"github.com/comicdex/comicdex/pkg/models"
	"github.com/comicdex/comicdex/pkg/searchlog"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// EmptySearchQueryText is logged when a search carries no criteria at all.
const EmptySearchQueryText = "empty_search"

type ExecuteOptions struct {
	Title     string
	Genre     string
	Author    string
	Year      string
	Languages []string

	// SortBy and GroupBy name registered strategies. Blank means no
	// sorting or no grouping; unknown names fail before anything runs.
	SortBy  string
	GroupBy string

	// RawQuery overrides the serialized query text in the log. Used by
	// callers that accept a free-form query string.
	RawQuery string
}

// QueryResult is one executed search. Groups is nil unless a group
// strategy was requested; Comics always holds the flat filtered results.
type QueryResult struct {
	Comics []*models.Comic `json:"comics"`
	Groups []Group         `json:"groups,omitempty"`
	Total  int             `json:"total"`
}

type Service struct {
	comicService *comics.Service
	logService   *searchlog.Service
}

func NewService(db *bun.DB) *Service {
	return &Service{
		comicService: comics.NewService(db),
		logService:   searchlog.NewService(db),
	}
}

// Execute runs the full query pipeline: resolve strategies, fetch
// candidates, filter, sort, group, and log. Strategy resolution happens
// first so an unknown strategy fails before any storage read and nothing
// is logged. A log append failure fails the whole search.
func (svc *Service) Execute(ctx context.Context, opts ExecuteOptions) (*QueryResult, error) {
	var sortStrategy SortStrategy
	if opts.SortBy != "" {
		s, err := SortStrategyFor(opts.SortBy)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		sortStrategy = s
	}

	var groupStrategy GroupStrategy
	if opts.GroupBy != "" {
		g, err := GroupStrategyFor(opts.GroupBy)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		groupStrategy = g
	}

	filters := BuildFilters(FilterParams{
		Title:     opts.Title,
		Genre:     opts.Genre,
		Author:    opts.Author,
		Year:      opts.Year,
		Languages: opts.Languages,
	})

	// A title criterion narrows the candidate fetch with a LIKE match.
	// The database match is a superset (it sees serialized variant
	// titles), so the title filter still runs in memory.
	listOpts := comics.ListComicsOptions{}
	if opts.Title != "" {
		listOpts.TitleText = &opts.Title
	}

	candidates, err := svc.comicService.ListComics(ctx, listOpts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	matched := ApplyFilters(candidates, filters)

	if sortStrategy != nil {
		matched = sortStrategy.Sort(matched)
	}

	var groups []Group
	if groupStrategy != nil {
		groups = groupStrategy.Group(matched)
	}

	resultIDs := make([]string, 0, len(matched))
	for _, c := range matched {
		resultIDs = append(resultIDs, c.ID)
	}

	err = svc.logService.Append(ctx, &models.SearchLog{
		QueryText:   queryText(opts.RawQuery, filters),
		ResultCount: len(matched),
		ResultIDs:   resultIDs,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &QueryResult{
		Comics: matched,
		Groups: groups,
		Total:  len(matched),
	}, nil
}

// queryText serializes the executed criteria for the log as
// "name=value AND name=value", or the raw query when one was given, or the
// empty-search marker when there were no criteria.
func queryText(rawQuery string, filters []Filter) string {
	if rawQuery != "" {
		return rawQuery
	}
	if len(filters) == 0 {
		return EmptySearchQueryText
	}

	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, f.Name()+"="+f.Value())
	}
	return strings.Join(parts, " AND ")
}
