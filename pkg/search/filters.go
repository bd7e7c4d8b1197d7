// Package search composes filter, sort, and group strategies into a single
// query pipeline over the comic catalog, logging every executed query.
package search

import (
	"strings"

	"github.com/comicdex/comicdex/pkg/models"
)

// Filter decides whether a single comic matches one search criterion.
// Filters are pure predicates; combining them is the service's job, and
// result order is always decided by the candidate order, never the filter.
type Filter interface {
	// Matches reports whether the comic satisfies the criterion.
	Matches(comic *models.Comic) bool
	// Name is the field name used when serializing the query for the log.
	Name() string
	// Value is the criterion value used when serializing the query.
	Value() string
}

// GenreFilter matches comics whose genre list contains the value,
// case-insensitively.
type GenreFilter struct {
	Genre string
}

func (f GenreFilter) Matches(comic *models.Comic) bool {
	return containsFold(comic.Genres, f.Genre)
}

func (f GenreFilter) Name() string  { return "genre" }
func (f GenreFilter) Value() string { return f.Genre }

// AuthorFilter matches comics where any author name contains the value as a
// case-insensitive substring.
type AuthorFilter struct {
	Author string
}

func (f AuthorFilter) Matches(comic *models.Comic) bool {
	return anyContainsSubstringFold(comic.Authors, f.Author)
}

func (f AuthorFilter) Name() string  { return "author" }
func (f AuthorFilter) Value() string { return f.Author }

// YearFilter matches comics whose publication years contain the value
// exactly.
type YearFilter struct {
	Year string
}

func (f YearFilter) Matches(comic *models.Comic) bool {
	for _, y := range comic.PublicationYears {
		if y == f.Year {
			return true
		}
	}
	return false
}

func (f YearFilter) Name() string  { return "year" }
func (f YearFilter) Value() string { return f.Year }

// TitleFilter matches comics whose title or any variant title contains the
// value as a case-insensitive substring.
type TitleFilter struct {
	Title string
}

func (f TitleFilter) Matches(comic *models.Comic) bool {
	if containsSubstringFold(comic.Title, f.Title) {
		return true
	}
	return anyContainsSubstringFold(comic.VariantTitles, f.Title)
}

func (f TitleFilter) Name() string  { return "title" }
func (f TitleFilter) Value() string { return f.Title }

// LanguageFilter matches comics whose language list intersects the
// requested languages, case-insensitively. An empty request matches
// nothing and is screened out before filter construction.
type LanguageFilter struct {
	Languages []string
}

func (f LanguageFilter) Matches(comic *models.Comic) bool {
	for _, want := range f.Languages {
		if containsFold(comic.Languages, want) {
			return true
		}
	}
	return false
}

func (f LanguageFilter) Name() string { return "languages" }

func (f LanguageFilter) Value() string {
	return strings.Join(f.Languages, ";")
}

// FilterParams holds the raw criteria from a search request. Blank fields
// produce no filter.
type FilterParams struct {
	Title     string
	Genre     string
	Author    string
	Year      string
	Languages []string
}

// BuildFilters constructs the filter set for the given criteria in a fixed
// field order. Filtering is conjunctive, so the order only affects how the
// query is serialized for the log.
func BuildFilters(params FilterParams) []Filter {
	filters := []Filter{}
	if params.Title != "" {
		filters = append(filters, TitleFilter{Title: params.Title})
	}
	if params.Genre != "" {
		filters = append(filters, GenreFilter{Genre: params.Genre})
	}
	if params.Author != "" {
		filters = append(filters, AuthorFilter{Author: params.Author})
	}
	if params.Year != "" {
		filters = append(filters, YearFilter{Year: params.Year})
	}
	if langs := nonBlank(params.Languages); len(langs) > 0 {
		filters = append(filters, LanguageFilter{Languages: langs})
	}
	return filters
}

// ApplyFilters returns the comics matching every filter, preserving the
// candidate order. With no filters it returns the candidates unchanged.
func ApplyFilters(comics []*models.Comic, filters []Filter) []*models.Comic {
	if len(filters) == 0 {
		return comics
	}

	matched := []*models.Comic{}
	for _, comic := range comics {
		ok := true
		for _, f := range filters {
			if !f.Matches(comic) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, comic)
		}
	}
	return matched
}

func nonBlank(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
