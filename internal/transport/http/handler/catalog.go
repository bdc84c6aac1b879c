package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sneakerhub/internal/app"
	"sneakerhub/internal/catalog"
	"sneakerhub/internal/transport/http/response"
)

type CatalogHandler struct {
	catalogService *app.CatalogService
}

func NewCatalogHandler(catalogService *app.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListSneakers(c *gin.Context) {
	page := queryInt(c, "page", 0)
	perPage := queryInt(c, "perPage", 0)

	items, err := h.catalogService.ListSneakers(c.Request.Context(), page, perPage)
	if err != nil {
		h.respondCatalogError(c, err, "list sneakers failed")
		return
	}
	response.OK(c, items)
}

// SneakerDetail forwards the upstream payload and status verbatim.
func (h *CatalogHandler) SneakerDetail(c *gin.Context) {
	slug := c.Param("slug")
	id := c.Param("id")

	detail, err := h.catalogService.SneakerDetail(c.Request.Context(), slug, id)
	if err != nil {
		h.respondCatalogError(c, err, "fetch sneaker detail failed")
		return
	}

	if detail.Status == http.StatusOK {
		c.Data(http.StatusOK, "application/json", detail.Body)
		return
	}
	response.Error(c, detail.Status, response.CodeUpstream, "requested resource not found")
}

func (h *CatalogHandler) ListUnreleased(c *gin.Context) {
	page := queryInt(c, "page", 0)
	perPage := queryInt(c, "perPage", 0)

	items, err := h.catalogService.ListUnreleased(c.Request.Context(), page, perPage)
	if err != nil {
		h.respondCatalogError(c, err, "list unreleased sneakers failed")
		return
	}
	response.OK(c, items)
}

func (h *CatalogHandler) Arrivals(c *gin.Context) {
	arrivals, err := h.catalogService.ListArrivals(c.Request.Context())
	if err != nil {
		h.respondCatalogError(c, err, "list arrivals failed")
		return
	}
	response.OK(c, arrivals)
}

func (h *CatalogHandler) respondCatalogError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrEmptySlug):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, catalog.ErrUpstream):
		response.Error(c, http.StatusBadGateway, response.CodeUpstream, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}

// Query values arrive loosely typed; anything unparseable falls back.
func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
