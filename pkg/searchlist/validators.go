package searchlist

type AddComicPayload struct {
	ComicID string `json:"comic_id" validate:"required,max=50"`
}
