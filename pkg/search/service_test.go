package search

import (
	"context"
	"database/sql"
	"testing"

	"github.com/comicdex/comicdex/pkg/comics"
	"github.com/comicdex/comicdex/pkg/errcodes"
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

func seedCatalog(t *testing.T, db *bun.DB) {
	t.Helper()

	batman := &models.Comic{
		ID:               "001",
		Title:            "Batman",
		VariantTitles:    []string{"The Dark Knight"},
		Authors:          []string{"Kane, Bob", "Finger, Bill"},
		PublicationYears: []string{"1986"},
		Genres:           []string{"Superhero"},
		Languages:        []string{"English"},
		ISBNs:            []string{"9781401238964"},
	}
	tintin := &models.Comic{
		ID:               "002",
		Title:            "Tintin au Congo",
		Authors:          []string{"Hergé"},
		PublicationYears: []string{"1931"},
		Genres:           []string{"Adventure"},
		Languages:        []string{"French"},
	}
	watchmen := &models.Comic{
		ID:               "003",
		Title:            "Watchmen",
		Authors:          []string{"Moore, Alan"},
		PublicationYears: []string{"1986", "1987"},
		Genres:           []string{"Superhero"},
		Languages:        []string{"English"},
		ISBNs:            []string{"9780930289232"},
	}

	err := comics.NewService(db).UpsertFromImport(context.Background(), []*models.Comic{batman, tintin, watchmen})
	require.NoError(t, err)
}

func loggedQueries(t *testing.T, db *bun.DB) []*models.SearchLog {
	t.Helper()
	logs, err := searchlog.NewService(db).ListLogs(context.Background(), searchlog.ListLogsOptions{})
	require.NoError(t, err)
	return logs
}

func TestExecuteFilters(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	seedCatalog(t, db)
	svc := NewService(db)

	t.Run("single criterion", func(t *testing.T) {
		result, err := svc.Execute(ctx, ExecuteOptions{Genre: "superhero"})
		require.NoError(t, err)
		require.Equal(t, 2, result.Total)
		assert.Equal(t, "001", result.Comics[0].ID)
		assert.Equal(t, "003", result.Comics[1].ID)
		assert.Nil(t, result.Groups)
	})

	t.Run("criteria combine with AND", func(t *testing.T) {
		result, err := svc.Execute(ctx, ExecuteOptions{Genre: "Superhero", Author: "moore"})
		require.NoError(t, err)
		require.Equal(t, 1, result.Total)
		assert.Equal(t, "003", result.Comics[0].ID)
	})

	t.Run("title matches variant titles", func(t *testing.T) {
		result, err := svc.Execute(ctx, ExecuteOptions{Title: "dark knight"})
		require.NoError(t, err)
		require.Equal(t, 1, result.Total)
		assert.Equal(t, "001", result.Comics[0].ID)
	})

	t.Run("no criteria returns everything in storage order", func(t *testing.T) {
		result, err := svc.Execute(ctx, ExecuteOptions{})
		require.NoError(t, err)
		require.Equal(t, 3, result.Total)
		assert.Equal(t, "001", result.Comics[0].ID)
		assert.Equal(t, "002", result.Comics[1].ID)
		assert.Equal(t, "003", result.Comics[2].ID)
	})

	t.Run("no matches is not an error", func(t *testing.T) {
		result, err := svc.Execute(ctx, ExecuteOptions{Genre: "Romance"})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Total)
		assert.Empty(t, result.Comics)
	})
}

func TestExecuteSortAndGroup(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	seedCatalog(t, db)
	svc := NewService(db)

	t.Run("sorted descending", func(t *testing.T) {
		result, err := svc.Execute(ctx, ExecuteOptions{SortBy: "alphabetical_desc"})
		require.NoError(t, err)
		require.Equal(t, 3, result.Total)
		assert.Equal(t, "Watchmen", result.Comics[0].Title)
		assert.Equal(t, "Tintin au Congo", result.Comics[1].Title)
		assert.Equal(t, "Batman", result.Comics[2].Title)
	})

	t.Run("grouped by year fans out", func(t *testing.T) {
		result, err := svc.Execute(ctx, ExecuteOptions{Genre: "Superhero", GroupBy: "year"})
		require.NoError(t, err)
		require.Len(t, result.Groups, 2)
		assert.Equal(t, "1986", result.Groups[0].Key)
		require.Len(t, result.Groups[0].Comics, 2)
		assert.Equal(t, "1987", result.Groups[1].Key)
		require.Len(t, result.Groups[1].Comics, 1)
		assert.Equal(t, "003", result.Groups[1].Comics[0].ID)
	})

	t.Run("sort applies before grouping", func(t *testing.T) {
		result, err := svc.Execute(ctx, ExecuteOptions{SortBy: "alphabetical_asc", GroupBy: "author"})
		require.NoError(t, err)
		// Batman sorts first, so its authors open the key order.
		require.NotEmpty(t, result.Groups)
		assert.Equal(t, "Kane, Bob", result.Groups[0].Key)
	})

	t.Run("grouping keeps flat results too", func(t *testing.T) {
		result, err := svc.Execute(ctx, ExecuteOptions{GroupBy: "author"})
		require.NoError(t, err)
		assert.Equal(t, 3, result.Total)
		assert.Len(t, result.Comics, 3)
	})
}

func TestExecuteLogging(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	seedCatalog(t, db)
	svc := NewService(db)

	result, err := svc.Execute(ctx, ExecuteOptions{Genre: "Superhero", Author: "Kane"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)

	_, err = svc.Execute(ctx, ExecuteOptions{})
	require.NoError(t, err)

	_, err = svc.Execute(ctx, ExecuteOptions{Genre: "Romance"})
	require.NoError(t, err)

	logs := loggedQueries(t, db)
	require.Len(t, logs, 3)

	assert.Equal(t, "genre=Superhero AND author=Kane", logs[0].QueryText)
	assert.Equal(t, 1, logs[0].ResultCount)
	assert.Equal(t, []string{"001"}, logs[0].ResultIDs)

	assert.Equal(t, EmptySearchQueryText, logs[1].QueryText)
	assert.Equal(t, 3, logs[1].ResultCount)

	// Empty results still get logged.
	assert.Equal(t, "genre=Romance", logs[2].QueryText)
	assert.Equal(t, 0, logs[2].ResultCount)
	assert.Equal(t, []string{}, logs[2].ResultIDs)
}

func TestExecuteUnknownStrategy(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	seedCatalog(t, db)
	svc := NewService(db)

	_, err := svc.Execute(ctx, ExecuteOptions{SortBy: "by_popularity"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.UnknownStrategy("sort", "by_popularity"))

	_, err = svc.Execute(ctx, ExecuteOptions{GroupBy: "publisher"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.UnknownStrategy("group", "publisher"))

	// A rejected search never reaches the log.
	assert.Empty(t, loggedQueries(t, db))
}

func TestExecuteRawQueryOverridesLogText(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	seedCatalog(t, db)
	svc := NewService(db)

	_, err := svc.Execute(ctx, ExecuteOptions{Genre: "Superhero", RawQuery: "batman movies"})
	require.NoError(t, err)

	logs := loggedQueries(t, db)
	require.Len(t, logs, 1)
	assert.Equal(t, "batman movies", logs[0].QueryText)
}
