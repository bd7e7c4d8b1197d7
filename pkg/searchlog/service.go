// Package searchlog is the append-only log of executed searches. Reporting
// reads it; nothing ever updates or deletes entries.
package searchlog

import (
	"context"
	"time"

	"github.com/comicdex/comicdex/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type ListLogsOptions struct {
	Limit  *int
	Offset *int
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Append records one executed search. Callers treat a failure here as a
// failure of the whole search so the log never silently under-counts.
func (svc *Service) Append(ctx context.Context, log *models.SearchLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	if log.ResultIDs == nil {
		log.ResultIDs = []string{}
	}

	_, err := svc.db.
		NewInsert().
		Model(log).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

// ListLogs returns log entries oldest first.
func (svc *Service) ListLogs(ctx context.Context, opts ListLogsOptions) ([]*models.SearchLog, error) {
	logs := []*models.SearchLog{}

	q := svc.db.
		NewSelect().
		Model(&logs).
		Order("sl.created_at ASC").
		Order("sl.id ASC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return logs, nil
}

// CountLogs returns the total number of logged searches.
func (svc *Service) CountLogs(ctx context.Context) (int, error) {
	count, err := svc.db.
		NewSelect().
		Model((*models.SearchLog)(nil)).
		Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return count, nil
}
