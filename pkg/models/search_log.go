package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SearchLog is one executed search. Entries are append-only and never
// mutated; reporting reads the full history.
type SearchLog struct {
	bun.BaseModel `bun:"table:search_logs,alias:sl"`

	ID          int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	QueryText   string    `bun:",nullzero" json:"query_text"`
	ResultCount int       `json:"result_count"`
	// ResultIDs holds the matched record ids in result order, post-filter
	// and pre-grouping.
	ResultIDs []string `bun:"result_ids" json:"result_ids"`
}
