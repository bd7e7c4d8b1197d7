package reports

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/comicdex/comicdex/pkg/comics"
	"github.com/comicdex/comicdex/pkg/migrations"
	"github.com/comicdex/comicdex/pkg/models"
	"github.com/comicdex/comicdex/pkg/searchlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func appendLog(t *testing.T, db *bun.DB, queryText string, at time.Time, resultIDs ...string) {
	t.Helper()
	if resultIDs == nil {
		resultIDs = []string{}
	}
	err := searchlog.NewService(db).Append(context.Background(), &models.SearchLog{
		QueryText:   queryText,
		CreatedAt:   at,
		ResultCount: len(resultIDs),
		ResultIDs:   resultIDs,
	})
	require.NoError(t, err)
}

func TestTopQueries(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Case and surrounding whitespace variants aggregate together.
	appendLog(t, db, "title=Batman", base)
	appendLog(t, db, "title=batman", base.Add(time.Minute))
	appendLog(t, db, "  title=BATMAN  ", base.Add(2*time.Minute))
	appendLog(t, db, "genre=Adventure", base.Add(3*time.Minute))
	appendLog(t, db, "empty_search", base.Add(4*time.Minute))
	appendLog(t, db, "genre=Adventure", base.Add(5*time.Minute))

	rows, err := svc.TopQueries(ctx, TopQueriesOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "title=batman", rows[0].Query)
	assert.Equal(t, 3, rows[0].Count)
	assert.Equal(t, base.Add(2*time.Minute), rows[0].LastSeen.UTC())

	assert.Equal(t, "genre=adventure", rows[1].Query)
	assert.Equal(t, 2, rows[1].Count)

	assert.Equal(t, "empty_search", rows[2].Query)
	assert.Equal(t, 1, rows[2].Count)

	t.Run("ties break on recency", func(t *testing.T) {
		appendLog(t, db, "empty_search", base.Add(10*time.Minute))
		rows, err := svc.TopQueries(ctx, TopQueriesOptions{})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		// empty_search and genre=adventure both have count 2 now; the more
		// recently seen one wins.
		assert.Equal(t, "empty_search", rows[1].Query)
		assert.Equal(t, "genre=adventure", rows[2].Query)
	})

	t.Run("limit caps rows", func(t *testing.T) {
		limit := 1
		rows, err := svc.TopQueries(ctx, TopQueriesOptions{Limit: &limit})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "title=batman", rows[0].Query)
	})

	t.Run("repeat calls are identical", func(t *testing.T) {
		first, err := svc.TopQueries(ctx, TopQueriesOptions{})
		require.NoError(t, err)
		second, err := svc.TopQueries(ctx, TopQueriesOptions{})
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestHighFrequency(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	err := comics.NewService(db).UpsertFromImport(ctx, []*models.Comic{
		{ID: "001", Title: "Batman"},
		{ID: "002", Title: "Watchmen"},
	})
	require.NoError(t, err)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// 001 appears in exactly threshold result sets: excluded. 002 appears
	// in one more: included.
	for i := 0; i < HighFrequencyThreshold; i++ {
		appendLog(t, db, "title=batman", base.Add(time.Duration(i)*time.Second), "001", "002")
	}
	appendLog(t, db, "title=watchmen", base.Add(time.Hour), "002")

	rows, err := svc.HighFrequency(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "002", rows[0].Comic.ID)
	assert.Equal(t, HighFrequencyThreshold+1, rows[0].Count)
}

func TestPopularComics(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	err := comics.NewService(db).UpsertFromImport(ctx, []*models.Comic{
		{ID: "001", Title: "Batman"},
		{ID: "002", Title: "Tintin au Congo"},
		{ID: "003", Title: "Watchmen"},
	})
	require.NoError(t, err)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	appendLog(t, db, "genre=Superhero", base, "001", "003")
	appendLog(t, db, "title=batman", base.Add(time.Minute), "001")
	appendLog(t, db, "empty_search", base.Add(2*time.Minute), "001", "002", "003")

	rows, err := svc.PopularComics(ctx, PopularComicsOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "001", rows[0].Comic.ID)
	assert.Equal(t, 3, rows[0].Count)
	assert.Equal(t, "003", rows[1].Comic.ID)
	assert.Equal(t, 2, rows[1].Count)
	assert.Equal(t, "002", rows[2].Comic.ID)
	assert.Equal(t, 1, rows[2].Count)

	t.Run("ids missing from the catalog are skipped", func(t *testing.T) {
		appendLog(t, db, "title=ghost", base.Add(3*time.Minute), "999", "999-b")
		rows, err := svc.PopularComics(ctx, PopularComicsOptions{})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "001", rows[0].Comic.ID)
	})

	t.Run("limit caps rows", func(t *testing.T) {
		limit := 2
		rows, err := svc.PopularComics(ctx, PopularComicsOptions{Limit: &limit})
		require.NoError(t, err)
		require.Len(t, rows, 2)
	})
}
