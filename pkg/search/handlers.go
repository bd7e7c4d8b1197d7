package search

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	searchService *Service
}

func (h *handler) execute(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ExecuteSearchQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := ExecuteOptions{
		Languages: params.Languages,
	}
	if params.Title != nil {
		opts.Title = *params.Title
	}
	if params.Genre != nil {
		opts.Genre = *params.Genre
	}
	if params.Author != nil {
		opts.Author = *params.Author
	}
	if params.Year != nil {
		opts.Year = *params.Year
	}
	if params.SortBy != nil {
		opts.SortBy = *params.SortBy
	}
	if params.GroupBy != nil {
		opts.GroupBy = *params.GroupBy
	}

	result, err := h.searchService.Execute(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, result))
}
