package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/comicdex/comicdex/pkg/binder"
	"github.com/comicdex/comicdex/pkg/comics"
	"github.com/comicdex/comicdex/pkg/config"
	"github.com/comicdex/comicdex/pkg/errcodes"
	"github.com/comicdex/comicdex/pkg/reports"
	"github.com/comicdex/comicdex/pkg/search"
	"github.com/comicdex/comicdex/pkg/searchlist"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	comicsGroup := e.Group("/comics")
	comics.RegisterRoutesWithGroup(comicsGroup, db)

	searchGroup := e.Group("/search")
	search.RegisterRoutesWithGroup(searchGroup, db)

	reportsGroup := e.Group("/reports")
	reports.RegisterRoutesWithGroup(reportsGroup, db)

	// Search lists are keyed by a session cookie, so the whole group runs
	// behind the session middleware.
	listStore := searchlist.NewStore()
	searchListGroup := e.Group("/search-list")
	searchListGroup.Use(searchlist.EnsureSession())
	searchlist.RegisterRoutesWithGroup(searchListGroup, db, listStore)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
