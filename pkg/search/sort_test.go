package search

import (
	"testing"

	"github.com/comicdex/comicdex/pkg/errcodes"
	"github.com/comicdex/comicdex/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabeticalSort(t *testing.T) {
	t.Parallel()

	input := []*models.Comic{
		comic("001", "watchmen"),
		comic("002", "Batman"),
		comic("003", "Tintin au Congo"),
	}

	t.Run("ascending", func(t *testing.T) {
		t.Parallel()
		sorted := AlphabeticalSort{}.Sort(input)
		require.Len(t, sorted, 3)
		assert.Equal(t, "Batman", sorted[0].Title)
		assert.Equal(t, "Tintin au Congo", sorted[1].Title)
		assert.Equal(t, "watchmen", sorted[2].Title)
	})

	t.Run("descending", func(t *testing.T) {
		t.Parallel()
		sorted := AlphabeticalSort{Descending: true}.Sort(input)
		require.Len(t, sorted, 3)
		assert.Equal(t, "watchmen", sorted[0].Title)
		assert.Equal(t, "Tintin au Congo", sorted[1].Title)
		assert.Equal(t, "Batman", sorted[2].Title)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		t.Parallel()
		AlphabeticalSort{}.Sort(input)
		assert.Equal(t, "watchmen", input[0].Title)
	})

	t.Run("equal titles keep candidate order", func(t *testing.T) {
		t.Parallel()
		dupes := []*models.Comic{
			comic("010", "Batman"),
			comic("011", "batman"),
			comic("012", "BATMAN"),
		}
		sorted := AlphabeticalSort{}.Sort(dupes)
		assert.Equal(t, "010", sorted[0].ID)
		assert.Equal(t, "011", sorted[1].ID)
		assert.Equal(t, "012", sorted[2].ID)
	})
}

func TestSortStrategyFor(t *testing.T) {
	t.Parallel()

	t.Run("registered strategies", func(t *testing.T) {
		t.Parallel()
		asc, err := SortStrategyFor("alphabetical_asc")
		require.NoError(t, err)
		assert.Equal(t, "alphabetical_asc", asc.Name())

		desc, err := SortStrategyFor("alphabetical_desc")
		require.NoError(t, err)
		assert.Equal(t, "alphabetical_desc", desc.Name())
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		_, err := SortStrategyFor("by_isbn")
		require.Error(t, err)
		assert.ErrorIs(t, err, errcodes.UnknownStrategy("sort", "by_isbn"))
	})
}
