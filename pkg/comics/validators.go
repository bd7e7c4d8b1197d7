package comics

type ListComicsQuery struct {
	Limit  int     `query:"limit" json:"limit,omitempty" default:"24" validate:"min=1,max=100"`
	Offset int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	Title  *string `query:"title" json:"title,omitempty" validate:"omitempty,max=300"`
}
