package comics

import (
	"net/http"

	"github.com/comicdex/comicdex/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	comicService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	comic, err := h.comicService.RetrieveComic(ctx, RetrieveComicOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, comic))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListComicsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := ListComicsOptions{
		Limit:     &params.Limit,
		Offset:    &params.Offset,
		TitleText: params.Title,
	}

	comics, total, err := h.comicService.ListComicsWithTotal(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Comics []*models.Comic `json:"comics"`
		Total  int             `json:"total"`
	}{comics, total}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
