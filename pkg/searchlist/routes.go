package searchlist

import (
	"github.com/comicdex/comicdex/pkg/comics"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers search list routes on a pre-configured
// group. The group must carry the EnsureSession middleware.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, store *Store) {
	h := &handler{
		store:        store,
		comicService: comics.NewService(db),
	}

	g.GET("", h.list)
	g.POST("", h.add)
	g.DELETE("/:id", h.remove)
	g.DELETE("", h.clear)
	g.DELETE("/session", h.dropSession)
}
