package search

import (
	"testing"

	"github.com/comicdex/comicdex/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comic(id, title string) *models.Comic {
	c := &models.Comic{ID: id, Title: title}
	c.EnsureDefaults()
	return c
}

func TestGenreFilter(t *testing.T) {
	t.Parallel()

	c := comic("001", "Batman")
	c.Genres = []string{"Superhero", "Action"}

	assert.True(t, GenreFilter{Genre: "superhero"}.Matches(c))
	assert.True(t, GenreFilter{Genre: "Action"}.Matches(c))
	assert.False(t, GenreFilter{Genre: "Romance"}.Matches(c))
}

func TestAuthorFilter(t *testing.T) {
	t.Parallel()

	c := comic("001", "Batman")
	c.Authors = []string{"Kane, Bob", "Finger, Bill"}

	assert.True(t, AuthorFilter{Author: "kane"}.Matches(c))
	assert.True(t, AuthorFilter{Author: "Bill"}.Matches(c))
	assert.False(t, AuthorFilter{Author: "Moore"}.Matches(c))
}

func TestYearFilter(t *testing.T) {
	t.Parallel()

	c := comic("001", "Batman")
	c.PublicationYears = []string{"1986", "1987"}

	assert.True(t, YearFilter{Year: "1986"}.Matches(c))
	assert.False(t, YearFilter{Year: "198"}.Matches(c), "year matches exactly, not by substring")
	assert.False(t, YearFilter{Year: "1990"}.Matches(c))
}

func TestTitleFilter(t *testing.T) {
	t.Parallel()

	c := comic("001", "Batman")
	c.VariantTitles = []string{"The Dark Knight"}

	assert.True(t, TitleFilter{Title: "bat"}.Matches(c))
	assert.True(t, TitleFilter{Title: "dark knight"}.Matches(c))
	assert.False(t, TitleFilter{Title: "superman"}.Matches(c))
}

func TestLanguageFilter(t *testing.T) {
	t.Parallel()

	c := comic("001", "Tintin")
	c.Languages = []string{"French", "English"}

	assert.True(t, LanguageFilter{Languages: []string{"french"}}.Matches(c))
	assert.True(t, LanguageFilter{Languages: []string{"German", "English"}}.Matches(c), "any overlap matches")
	assert.False(t, LanguageFilter{Languages: []string{"German"}}.Matches(c))
}

func TestBuildFilters(t *testing.T) {
	t.Parallel()

	t.Run("blank criteria produce no filters", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, BuildFilters(FilterParams{}))
		assert.Empty(t, BuildFilters(FilterParams{Languages: []string{"", ""}}))
	})

	t.Run("each non-blank criterion produces one filter", func(t *testing.T) {
		t.Parallel()
		filters := BuildFilters(FilterParams{
			Title:     "Batman",
			Genre:     "Superhero",
			Author:    "Kane",
			Year:      "1986",
			Languages: []string{"English"},
		})
		require.Len(t, filters, 5)
		assert.Equal(t, "title", filters[0].Name())
		assert.Equal(t, "genre", filters[1].Name())
		assert.Equal(t, "author", filters[2].Name())
		assert.Equal(t, "year", filters[3].Name())
		assert.Equal(t, "languages", filters[4].Name())
	})
}

func TestApplyFilters(t *testing.T) {
	t.Parallel()

	batman := comic("001", "Batman")
	batman.Genres = []string{"Superhero"}
	batman.Authors = []string{"Kane, Bob"}

	tintin := comic("002", "Tintin au Congo")
	tintin.Genres = []string{"Adventure"}
	tintin.Authors = []string{"Hergé"}

	watchmen := comic("003", "Watchmen")
	watchmen.Genres = []string{"Superhero"}
	watchmen.Authors = []string{"Moore, Alan"}

	all := []*models.Comic{batman, tintin, watchmen}

	t.Run("no filters returns input unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, all, ApplyFilters(all, nil))
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		t.Parallel()
		matched := ApplyFilters(all, []Filter{
			GenreFilter{Genre: "Superhero"},
			AuthorFilter{Author: "Moore"},
		})
		require.Len(t, matched, 1)
		assert.Equal(t, "003", matched[0].ID)
	})

	t.Run("filter order does not change the result", func(t *testing.T) {
		t.Parallel()
		a := ApplyFilters(all, []Filter{GenreFilter{Genre: "Superhero"}, TitleFilter{Title: "a"}})
		b := ApplyFilters(all, []Filter{TitleFilter{Title: "a"}, GenreFilter{Genre: "Superhero"}})
		assert.Equal(t, a, b)
	})

	t.Run("candidate order is preserved", func(t *testing.T) {
		t.Parallel()
		matched := ApplyFilters(all, []Filter{GenreFilter{Genre: "Superhero"}})
		require.Len(t, matched, 2)
		assert.Equal(t, "001", matched[0].ID)
		assert.Equal(t, "003", matched[1].ID)
	})
}
