package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/middleware"
	"github.com/guttosm/cargo-loader/internal/service"
)

const defaultHistoryLimit = 20

// CatalogHandler serves the container catalog endpoints.
type CatalogHandler struct {
	catalogs  service.ContainerCatalogService
	planner   service.LoadPlanner
	unitScale int
}

// NewCatalogHandler creates a CatalogHandler. planner, when not nil, has its
// plan cache cleared after every catalog change. unitScale is the default
// millimetres per request unit.
func NewCatalogHandler(catalogs service.ContainerCatalogService, planner service.LoadPlanner, unitScale int) *CatalogHandler {
	if unitScale <= 0 {
		unitScale = 10
	}
	return &CatalogHandler{catalogs: catalogs, planner: planner, unitScale: unitScale}
}

// GetCatalog handles GET /api/containers.
//
// @Summary      Get the container catalog
// @Description  Returns the container types used when a load plan request names none. Without a stored catalog the ISO defaults (20DV, 40DV, 40HQ, 45HQ, unlimited) are returned with source "builtin". Dimensions are in millimetres.
// @Tags         Containers
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CatalogResponse} "Active catalog"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key or token"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/containers [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	catalog, err := h.catalogs.Active(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(catalog)
}

// ReplaceCatalog handles PUT /api/containers.
//
// @Summary      Replace the container catalog
// @Description  Stores a new catalog version and makes it active. Cached plans computed against the previous catalog are dropped. A count of 0 means unlimited.
// @Tags         Containers
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateContainersRequest true "Container types"
// @Success      200 {object} dto.SuccessResponse{data=dto.CatalogResponse} "New active catalog"
// @Failure      400 {object} dto.ErrorResponse "Malformed JSON"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key or token"
// @Failure      422 {object} dto.ErrorResponse "Invalid fields, see details"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/containers [put]
func (h *CatalogHandler) ReplaceCatalog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.UpdateContainersRequest](c)
	if err != nil {
		builder.BindFailed(err)
		return
	}

	entries, err := req.Build(h.unitScale)
	if err != nil {
		builder.Fail(err)
		return
	}

	catalog, err := h.catalogs.Replace(c.Request.Context(), entries, middleware.GetSubject(c))
	if err != nil {
		builder.Fail(err)
		return
	}

	if h.planner != nil {
		h.planner.InvalidateCache()
	}

	types := make([]string, len(catalog.Containers))
	for i, e := range catalog.Containers {
		types[i] = e.Type
	}
	middleware.AuditLog(c, "replace_catalog", "Container catalog replaced", map[string]interface{}{
		"version":    catalog.Version,
		"containers": types,
	})

	builder.SuccessOK(dto.CatalogResponse{ContainerCatalog: *catalog, Source: service.CatalogSourceDatabase})
}

// CatalogHistory handles GET /api/containers/history.
//
// @Summary      List catalog versions
// @Description  Returns stored catalog versions, newest first
// @Tags         Containers
// @Produce      json
// @Param        limit query int false "Number of versions (1-100)" default(20)
// @Success      200 {object} dto.SuccessResponse{data=[]model.ContainerCatalog} "Catalog versions"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key or token"
// @Failure      422 {object} dto.ErrorResponse "Invalid limit"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/containers/history [get]
func (h *CatalogHandler) CatalogHistory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var errs dto.ValidationErrors
	limit := queryInt(c, "limit", defaultHistoryLimit, 1, maxListLimit, &errs)
	if !errs.Empty() {
		builder.Fail(errs)
		return
	}

	history, err := h.catalogs.History(c.Request.Context(), limit)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(history)
}
