package reports

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	reportService *Service
}

func (h *handler) topQueries(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := TopQueriesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	rows, err := h.reportService.TopQueries(ctx, TopQueriesOptions{Limit: &params.Limit})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Queries []QueryCount `json:"queries"`
	}{rows}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) popularComics(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := PopularComicsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	rows, err := h.reportService.PopularComics(ctx, PopularComicsOptions{Limit: &params.Limit})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Comics []ComicCount `json:"comics"`
	}{rows}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) highFrequency(c echo.Context) error {
	ctx := c.Request().Context()

	rows, err := h.reportService.HighFrequency(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Comics    []ComicCount `json:"comics"`
		Threshold int          `json:"threshold"`
	}{rows, HighFrequencyThreshold}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
