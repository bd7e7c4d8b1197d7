package comicimport

import (
	"strings"

	"github.com/pkg/errors"
)

// Source dataset column names. Header cells in the CSV occasionally carry
// stray whitespace, so lookups trim before matching.
const (
	colRecordID            = "BL record ID"
	colTitle               = "Title"
	colVariantTitles       = "Variant titles"
	colName                = "Name"
	colDate                = "Date of publication"
	colGenre               = "Genre"
	colLanguages           = "Languages"
	colISBN                = "ISBN"
	colEdition             = "Edition"
	colPublisher           = "Publisher"
	colPlaceOfPublication  = "Place of publication"
	colTopics              = "Topics"
	colPhysicalDescription = "Physical description"
	colNotes               = "Notes"
)

var ErrMissingRecordID = errors.New("row has no record id")

// Row is one parsed CSV row before variant collapsing. Multiple Rows can
// share a RecordID; Collapse folds them into one record.
type Row struct {
	RecordID string
	Title    string

	VariantTitles    []string
	Authors          []string
	PublicationYears []string
	Genres           []string
	Languages        []string
	ISBNs            []string

	Edition             string
	Publisher           string
	PlaceOfPublication  string
	Topics              string
	PhysicalDescription string
	Notes               string
}

// ParseRow builds a Row from a header-keyed record. Every field value is
// normalized; multi-value fields are split on semicolons and ISBNs on
// commas. Rows without a record id are rejected.
func ParseRow(record map[string]string) (*Row, error) {
	fields := make(map[string]string, len(record))
	for key, value := range record {
		fields[strings.TrimSpace(key)] = value
	}

	recordID := strings.TrimSpace(fields[colRecordID])
	if recordID == "" {
		return nil, errors.WithStack(ErrMissingRecordID)
	}

	row := &Row{
		RecordID:            recordID,
		Title:               NormalizeText(fields[colTitle]),
		VariantTitles:       normalizeAll(SplitMultiValue(fields[colVariantTitles])),
		Authors:             normalizeAll(SplitMultiValue(fields[colName])),
		PublicationYears:    normalizeAll(SplitMultiValue(fields[colDate])),
		Genres:              normalizeAll(SplitMultiValue(fields[colGenre])),
		Languages:           normalizeAll(SplitMultiValue(fields[colLanguages])),
		ISBNs:               ParseISBNs(fields[colISBN]),
		Edition:             NormalizeText(fields[colEdition]),
		Publisher:           NormalizeText(fields[colPublisher]),
		PlaceOfPublication:  NormalizeText(fields[colPlaceOfPublication]),
		Topics:              NormalizeText(fields[colTopics]),
		PhysicalDescription: NormalizeText(fields[colPhysicalDescription]),
		Notes:               NormalizeText(fields[colNotes]),
	}
	return row, nil
}

func normalizeAll(values []string) []string {
	out := []string{}
	for _, v := range values {
		v = NormalizeText(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
