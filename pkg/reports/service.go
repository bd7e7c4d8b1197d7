// Package reports aggregates the search log into usage summaries. Every
// report reads the full log on demand; nothing is precomputed, so repeated
// calls over an unchanged log return identical results.
package reports

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/comicdex/comicdex/pkg/comics"
	"github.com/comicdex/comicdex/pkg/models"
	"github.com/comicdex/comicdex/pkg/searchlog"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// HighFrequencyThreshold is the strict minimum of logged result
// appearances before a record counts as high frequency.
const HighFrequencyThreshold = 100

// DefaultLimit caps report rows when the caller doesn't pick a limit.
const DefaultLimit = 10

// QueryCount is one aggregated query row. Query holds the canonical
// (lowercased, trimmed) text all counted entries share.
type QueryCount struct {
	Query    string    `json:"query"`
	Count    int       `json:"count"`
	LastSeen time.Time `json:"last_seen"`
}

// ComicCount is one comic with the number of searches that returned it.
type ComicCount struct {
	Comic *models.Comic `json:"comic"`
	Count int           `json:"count"`
}

type TopQueriesOptions struct {
	Limit *int
}

type PopularComicsOptions struct {
	Limit *int
}

type Service struct {
	logService   *searchlog.Service
	comicService *comics.Service
}

func NewService(db *bun.DB) *Service {
	return &Service{
		logService:   searchlog.NewService(db),
		comicService: comics.NewService(db),
	}
}

// aggregateQueries folds the log into per-query counts, keyed on the
// lowercased trimmed query text. Each log entry counts once, including
// repeats within the same session.
func (svc *Service) aggregateQueries(ctx context.Context) ([]QueryCount, error) {
	logs, err := svc.logService.ListLogs(ctx, searchlog.ListLogsOptions{})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	order := []string{}
	counts := map[string]*QueryCount{}
	for _, log := range logs {
		key := strings.ToLower(strings.TrimSpace(log.QueryText))
		qc, ok := counts[key]
		if !ok {
			qc = &QueryCount{Query: key}
			counts[key] = qc
			order = append(order, key)
		}
		qc.Count++
		if log.CreatedAt.After(qc.LastSeen) {
			qc.LastSeen = log.CreatedAt
		}
	}

	rows := make([]QueryCount, 0, len(order))
	for _, key := range order {
		rows = append(rows, *counts[key])
	}
	return rows, nil
}

func (svc *Service) rankedQueries(ctx context.Context) ([]QueryCount, error) {
	rows, err := svc.aggregateQueries(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		if !rows[i].LastSeen.Equal(rows[j].LastSeen) {
			return rows[i].LastSeen.After(rows[j].LastSeen)
		}
		return rows[i].Query < rows[j].Query
	})
	return rows, nil
}

// TopQueries returns the most frequent queries, most repeated first. Ties
// break on recency, then on query text so the order is deterministic.
func (svc *Service) TopQueries(ctx context.Context, opts TopQueriesOptions) ([]QueryCount, error) {
	rows, err := svc.rankedQueries(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return capRows(rows, opts.Limit), nil
}

// rankedComics folds the log's result ids into per-record counts, most
// returned first. Each log entry counts once per id it contains. Ties
// break on record id so the order is deterministic; ids no longer present
// in the catalog are skipped.
func (svc *Service) rankedComics(ctx context.Context) ([]ComicCount, error) {
	logs, err := svc.logService.ListLogs(ctx, searchlog.ListLogsOptions{})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	counts := map[string]int{}
	ids := []string{}
	for _, log := range logs {
		for _, id := range log.ResultIDs {
			if _, ok := counts[id]; !ok {
				ids = append(ids, id)
			}
			counts[id]++
		}
	}

	sort.SliceStable(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})

	resolved, err := svc.comicService.ResolveComics(ctx, ids)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rows := make([]ComicCount, 0, len(resolved))
	for _, comic := range resolved {
		rows = append(rows, ComicCount{Comic: comic, Count: counts[comic.ID]})
	}
	return rows, nil
}

// PopularComics returns the comics appearing in the most search results.
func (svc *Service) PopularComics(ctx context.Context, opts PopularComicsOptions) ([]ComicCount, error) {
	rows, err := svc.rankedComics(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	limit := DefaultLimit
	if opts.Limit != nil {
		limit = *opts.Limit
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// HighFrequency returns the subset of the popular-results aggregate whose
// count strictly exceeds the threshold. A record at exactly the threshold
// is excluded.
func (svc *Service) HighFrequency(ctx context.Context) ([]ComicCount, error) {
	rows, err := svc.rankedComics(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	out := []ComicCount{}
	for _, row := range rows {
		if row.Count > HighFrequencyThreshold {
			out = append(out, row)
		}
	}
	return out, nil
}

func capRows(rows []QueryCount, limit *int) []QueryCount {
	max := DefaultLimit
	if limit != nil {
		max = *limit
	}
	if len(rows) > max {
		rows = rows[:max]
	}
	return rows
}
