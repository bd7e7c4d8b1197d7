// Package comics is the storage layer for catalog records. It only deals
// with fetching and persisting Comics; search semantics (filters, sorting,
// grouping) live in pkg/search.
package comics

import (
	"context"
	"database/sql"
	"time"

	"github.com/comicdex/comicdex/pkg/errcodes"
	"github.com/comicdex/comicdex/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveComicOptions struct {
	ID *string
}

type ListComicsOptions struct {
	Limit  *int
	Offset *int
	IDs    []string
	// TitleText narrows results to comics whose title or variant titles
	// contain the text, case-insensitively. The match runs against the
	// serialized variant title column, so it can overmatch on punctuation;
	// callers needing exact substring semantics re-check in memory.
	TitleText *string

	includeTotal bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) RetrieveComic(ctx context.Context, opts RetrieveComicOptions) (*models.Comic, error) {
	comic := &models.Comic{}

	q := svc.db.
		NewSelect().
		Model(comic)

	if opts.ID != nil {
		q = q.Where("c.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Comic")
		}
		return nil, errors.WithStack(err)
	}

	return comic, nil
}

func (svc *Service) ListComics(ctx context.Context, opts ListComicsOptions) ([]*models.Comic, error) {
	c, _, err := svc.listComicsWithTotal(ctx, opts)
	return c, errors.WithStack(err)
}

func (svc *Service) ListComicsWithTotal(ctx context.Context, opts ListComicsOptions) ([]*models.Comic, int, error) {
	opts.includeTotal = true
	return svc.listComicsWithTotal(ctx, opts)
}

func (svc *Service) listComicsWithTotal(ctx context.Context, opts ListComicsOptions) ([]*models.Comic, int, error) {
	comics := []*models.Comic{}
	var total int
	var err error

	// rowid order is the order records were imported in, which is the
	// catalog's canonical storage order.
	q := svc.db.
		NewSelect().
		Model(&comics).
		Order("c.rowid ASC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}
	if len(opts.IDs) > 0 {
		q = q.Where("c.id IN (?)", bun.In(opts.IDs))
	}
	if opts.TitleText != nil {
		pattern := "%" + *opts.TitleText + "%"
		q = q.Where("(c.title LIKE ? COLLATE NOCASE OR c.variant_titles LIKE ? COLLATE NOCASE)", pattern, pattern)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return comics, total, nil
}

// ResolveComics fetches the comics for the given ids, preserving the order
// of ids and silently omitting ids with no matching record.
func (svc *Service) ResolveComics(ctx context.Context, ids []string) ([]*models.Comic, error) {
	if len(ids) == 0 {
		return []*models.Comic{}, nil
	}

	fetched, err := svc.ListComics(ctx, ListComicsOptions{IDs: ids})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	byID := make(map[string]*models.Comic, len(fetched))
	for _, c := range fetched {
		byID[c.ID] = c
	}

	comics := make([]*models.Comic, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			comics = append(comics, c)
		}
	}
	return comics, nil
}

func (svc *Service) CountComics(ctx context.Context) (int, error) {
	count, err := svc.db.
		NewSelect().
		Model((*models.Comic)(nil)).
		Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return count, nil
}

// UpsertFromImport writes collapsed import records in one transaction.
// Existing records are replaced wholesale since the import file is the
// source of truth for every field.
func (svc *Service) UpsertFromImport(ctx context.Context, comics []*models.Comic) error {
	if len(comics) == 0 {
		return nil
	}

	now := time.Now()
	for _, c := range comics {
		c.EnsureDefaults()
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(&comics).
			On("CONFLICT (id) DO UPDATE").
			Set("updated_at = EXCLUDED.updated_at").
			Set("title = EXCLUDED.title").
			Set("variant_titles = EXCLUDED.variant_titles").
			Set("authors = EXCLUDED.authors").
			Set("publication_years = EXCLUDED.publication_years").
			Set("genres = EXCLUDED.genres").
			Set("languages = EXCLUDED.languages").
			Set("isbns = EXCLUDED.isbns").
			Set("edition = EXCLUDED.edition").
			Set("publisher = EXCLUDED.publisher").
			Set("place_of_publication = EXCLUDED.place_of_publication").
			Set("topics = EXCLUDED.topics").
			Set("physical_description = EXCLUDED.physical_description").
			Set("notes = EXCLUDED.notes").
			Exec(ctx)
		return errors.WithStack(err)
	})
	return errors.WithStack(err)
}
