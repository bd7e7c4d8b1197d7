package search

type ExecuteSearchQuery struct {
	Title     *string  `query:"title" json:"title,omitempty" validate:"omitempty,max=300"`
	Genre     *string  `query:"genre" json:"genre,omitempty" validate:"omitempty,max=100"`
	Author    *string  `query:"author" json:"author,omitempty" validate:"omitempty,max=200"`
	Year      *string  `query:"year" json:"year,omitempty" validate:"omitempty,year"`
	Languages []string `query:"languages" json:"languages,omitempty" validate:"omitempty,dive,max=50"`
	SortBy    *string  `query:"sort_by" json:"sort_by,omitempty" validate:"omitempty,max=50"`
	GroupBy   *string  `query:"group_by" json:"group_by,omitempty" validate:"omitempty,max=50"`
}
