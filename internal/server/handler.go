package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/emrgen/peps/internal/service"
	"github.com/emrgen/peps/internal/store"
	"github.com/labstack/echo/v4"
)

// Handler serves the read-only query API.
type Handler struct {
	queries *service.QueryService
}

func NewHandler(queries *service.QueryService) *Handler {
	return &Handler{
		queries: queries,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Hello)
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/peps", h.ListPEPs)
	api.GET("/peps/count", h.CountPEPs)
	api.GET("/peps/:number", h.GetPEP)
	api.GET("/search", h.SearchPEPs)
}

func (h *Handler) Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"hello": "world"})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetPEP(c echo.Context) error {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "pep number must be an integer")
	}

	pep, err := h.queries.GetPEP(c.Request().Context(), number)
	if errors.Is(err, store.ErrPEPNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("PEP %d not found", number))
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pepResponse(pep))
}

func (h *Handler) ListPEPs(c echo.Context) error {
	skip, err := intQueryParam(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := intQueryParam(c, "limit", service.DefaultListLimit)
	if err != nil {
		return err
	}

	peps, total, err := h.queries.ListPEPs(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, PEPListResponse{
		PEPs:  pepResponses(peps),
		Total: total,
		Skip:  skip,
		Limit: limit,
	})
}

func (h *Handler) SearchPEPs(c echo.Context) error {
	query := c.QueryParam("q")
	if !c.QueryParams().Has("q") {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	peps, err := h.queries.SearchPEPs(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SearchResponse{
		PEPs:  pepResponses(peps),
		Total: len(peps),
		Query: query,
	})
}

func (h *Handler) CountPEPs(c echo.Context) error {
	count, err := h.queries.CountPEPs(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CountResponse{Count: count})
}

func intQueryParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be an integer", name))
	}

	return v, nil
}
