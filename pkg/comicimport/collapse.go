package comicimport

import (
	"strings"

	"github.com/comicdex/comicdex/pkg/models"
)

// Collapse folds parsed rows sharing a record id into single Comics. The
// first row seen for an id supplies the canonical title and scalar fields;
// titles on later rows that differ from the canonical one become variant
// titles, and multi-value fields are unioned. Record order follows first
// appearance in the input.
func Collapse(rows []*Row) []*models.Comic {
	order := []string{}
	byID := map[string]*models.Comic{}

	for _, row := range rows {
		comic, ok := byID[row.RecordID]
		if !ok {
			comic = &models.Comic{
				ID:                  row.RecordID,
				Title:               row.Title,
				VariantTitles:       []string{},
				Authors:             []string{},
				PublicationYears:    []string{},
				Genres:              []string{},
				Languages:           []string{},
				ISBNs:               []string{},
				Edition:             optional(row.Edition),
				Publisher:           optional(row.Publisher),
				PlaceOfPublication:  optional(row.PlaceOfPublication),
				Topics:              optional(row.Topics),
				PhysicalDescription: optional(row.PhysicalDescription),
				Notes:               optional(row.Notes),
			}
			byID[row.RecordID] = comic
			order = append(order, row.RecordID)
		}

		if row.Title != "" && !strings.EqualFold(row.Title, comic.Title) {
			comic.VariantTitles = appendMissing(comic.VariantTitles, row.Title)
		}
		for _, v := range row.VariantTitles {
			if strings.EqualFold(v, comic.Title) {
				continue
			}
			comic.VariantTitles = appendMissing(comic.VariantTitles, v)
		}
		comic.Authors = appendAllMissing(comic.Authors, row.Authors)
		comic.PublicationYears = appendAllMissing(comic.PublicationYears, row.PublicationYears)
		comic.Genres = appendAllMissing(comic.Genres, row.Genres)
		comic.Languages = appendAllMissing(comic.Languages, row.Languages)
		comic.ISBNs = appendAllMissing(comic.ISBNs, row.ISBNs)
	}

	comics := make([]*models.Comic, 0, len(order))
	for _, id := range order {
		c := byID[id]
		c.EnsureDefaults()
		comics = append(comics, c)
	}
	return comics
}

// appendMissing adds value unless an equal entry (case-insensitive) is
// already present, preserving first-seen order.
func appendMissing(values []string, value string) []string {
	for _, existing := range values {
		if strings.EqualFold(existing, value) {
			return values
		}
	}
	return append(values, value)
}

func appendAllMissing(values []string, additions []string) []string {
	for _, v := range additions {
		values = appendMissing(values, v)
	}
	return values
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
