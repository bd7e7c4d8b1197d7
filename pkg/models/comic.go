package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Comic is one normalized catalog record. Rows sharing a record id are
// collapsed into a single Comic at import time; alternate titles land in
// VariantTitles instead of producing a second record.
type Comic struct {
	bun.BaseModel `bun:"table:comics,alias:c"`

	// ID is the source record identifier (kept as a string to preserve
	// leading zeros). It is the collapse key for variant rows and the key
	// stored in search lists and log entries.
	ID        string    `bun:",pk" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title            string   `bun:",nullzero" json:"title"`
	VariantTitles    []string `json:"variant_titles"`
	Authors          []string `json:"authors"`
	PublicationYears []string `json:"publication_years"`
	Genres           []string `json:"genres"`
	Languages        []string `json:"languages"`
	ISBNs            []string `bun:"isbns" json:"isbns"`

	Edition             *string `json:"edition"`
	Publisher           *string `json:"publisher"`
	PlaceOfPublication  *string `json:"place_of_publication"`
	Topics              *string `json:"topics"`
	PhysicalDescription *string `json:"physical_description"`
	Notes               *string `json:"notes"`

	// MissingISBN is derived from ISBNs for display; it is never stored.
	MissingISBN bool `bun:"-" json:"missing_isbn"`
}

var _ bun.AfterScanRowHook = (*Comic)(nil)

func (c *Comic) AfterScanRow(_ context.Context) error {
	c.EnsureDefaults()
	return nil
}

// EnsureDefaults replaces nil multi-value fields with empty slices and
// recomputes the derived missing-ISBN flag.
func (c *Comic) EnsureDefaults() {
	if c.VariantTitles == nil {
		c.VariantTitles = []string{}
	}
	if c.Authors == nil {
		c.Authors = []string{}
	}
	if c.PublicationYears == nil {
		c.PublicationYears = []string{}
	}
	if c.Genres == nil {
		c.Genres = []string{}
	}
	if c.Languages == nil {
		c.Languages = []string{}
	}
	if c.ISBNs == nil {
		c.ISBNs = []string{}
	}
	c.MissingISBN = len(c.ISBNs) == 0
}

// HasMissingISBN reports whether the record has no ISBN.
func (c *Comic) HasMissingISBN() bool {
	return len(c.ISBNs) == 0
}
