package searchlist

import (
	"net/http"

	"github.com/comicdex/comicdex/pkg/comics"
	"github.com/comicdex/comicdex/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	store        *Store
	comicService *comics.Service
}

// list resolves the session's saved ids against the catalog. Ids whose
// records have since disappeared are omitted rather than erroring.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := SessionID(c)

	resolved, err := h.comicService.ResolveComics(ctx, h.store.List(sessionID))
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Comics []*models.Comic `json:"comics"`
	}{resolved}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) add(c echo.Context) error {
	sessionID := SessionID(c)

	// Bind params.
	params := AddComicPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// The list is an id-set only; ids unknown to storage are accepted and
	// omitted at render time instead.
	h.store.Add(sessionID, params.ComicID)
	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func (h *handler) remove(c echo.Context) error {
	sessionID := SessionID(c)
	h.store.Remove(sessionID, c.Param("id"))
	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func (h *handler) clear(c echo.Context) error {
	sessionID := SessionID(c)
	h.store.Clear(sessionID)
	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func (h *handler) dropSession(c echo.Context) error {
	sessionID := SessionID(c)
	h.store.DropSession(sessionID)

	cookie := &http.Cookie{
		Name:   sessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}
	c.SetCookie(cookie)

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
