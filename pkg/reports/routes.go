package reports

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers report routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		reportService: NewService(db),
	}

	g.GET("/top-queries", h.topQueries)
	g.GET("/popular-comics", h.popularComics)
	g.GET("/high-frequency", h.highFrequency)
}
