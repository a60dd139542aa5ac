package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/domain/model"
	"github.com/guttosm/cargo-loader/internal/i18n"
	"github.com/guttosm/cargo-loader/internal/importer"
	"github.com/guttosm/cargo-loader/internal/middleware"
	"github.com/guttosm/cargo-loader/internal/service"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	// defaultMaxUploadBytes bounds shipment list uploads.
	defaultMaxUploadBytes = 10 << 20
	uploadField           = "file"
)

// LoadPlanHandler serves the load plan endpoints.
type LoadPlanHandler struct {
	planner        service.LoadPlanner
	defaults       dto.Defaults
	maxUploadBytes int64
	logs           service.LoggingService
}

// LoadPlanHandlerOption configures a LoadPlanHandler.
type LoadPlanHandlerOption func(*LoadPlanHandler)

// WithRequestDefaults sets the unit, loading type and quantity cap applied
// to requests that leave them out.
func WithRequestDefaults(d dto.Defaults) LoadPlanHandlerOption {
	return func(h *LoadPlanHandler) {
		if d.UnitScale <= 0 {
			d.UnitScale = h.defaults.UnitScale
		}
		h.defaults = d
	}
}

// WithMaxUploadBytes bounds the size of an imported shipment list.
func WithMaxUploadBytes(n int64) LoadPlanHandlerOption {
	return func(h *LoadPlanHandler) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

// WithPlanLogs exposes the stored request logs of each plan.
func WithPlanLogs(logs service.LoggingService) LoadPlanHandlerOption {
	return func(h *LoadPlanHandler) {
		h.logs = logs
	}
}

// NewLoadPlanHandler creates a LoadPlanHandler. Lengths default to
// centimetres and the loading type to stable.
func NewLoadPlanHandler(planner service.LoadPlanner, opts ...LoadPlanHandlerOption) *LoadPlanHandler {
	h := &LoadPlanHandler{
		planner:        planner,
		defaults:       dto.Defaults{UnitScale: 10},
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CreatePlan handles POST /api/load-plans.
//
// @Summary      Compute a load plan
// @Description  Packs the cargo list into containers. Containers come from the request, from the automatic ISO selection (auto=true) or, when neither is given, from the active container catalog. Identical requests return the stored plan. A plan cut short by the calculation timeout is returned with partial=true. Supports idempotency via Idempotency-Key header.
// @Tags         Load Plans
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.LoadPlanRequest true "Cargo and containers"
// @Success      201 {object} dto.SuccessResponse{data=model.LoadPlan} "Computed plan"
// @Failure      400 {object} dto.ErrorResponse "Malformed JSON"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key or token"
// @Failure      422 {object} dto.ErrorResponse "Invalid fields, see details"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/load-plans [post]
func (h *LoadPlanHandler) CreatePlan(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.LoadPlanRequest](c)
	if err != nil {
		builder.BindFailed(err)
		return
	}

	if plan, ok := h.plan(c, req); ok {
		builder.Created(planLocation(plan.ID), plan)
	}
}

// ImportPlan handles POST /api/load-plans/import.
//
// @Summary      Compute a load plan from a shipment list
// @Description  Reads cargo lines from an uploaded .xlsx or .csv sheet. Columns are matched by header (name, length, width, height, weight, quantity, stack, ...); sheets without a header are read positionally as name, length, width, height, weight, quantity.
// @Tags         Load Plans
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Shipment list (.xlsx, .csv)"
// @Param        auto query bool false "Choose containers automatically instead of using the active catalog"
// @Param        loading_type query string false "stable or compact" Enums(stable, compact)
// @Param        unit query string false "Unit of the sheet's lengths" Enums(mm, cm, dm, m)
// @Success      201 {object} dto.SuccessResponse{data=dto.ImportedPlanResponse} "Computed plan with import warnings"
// @Failure      400 {object} dto.ErrorResponse "No file uploaded or unreadable file"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key or token"
// @Failure      413 {object} dto.ErrorResponse "File too large"
// @Failure      415 {object} dto.ErrorResponse "Unsupported file type"
// @Failure      422 {object} dto.ErrorResponse "Invalid rows, see details"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/load-plans/import [post]
func (h *LoadPlanHandler) ImportPlan(c *gin.Context) {
	builder := NewResponseBuilder(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			builder.Error(http.StatusRequestEntityTooLarge, i18n.ErrKeyFileTooLarge, err)
			return
		}
		builder.Error(http.StatusBadRequest, i18n.ErrKeyFileRequired, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyFileRequired, err)
		return
	}
	defer file.Close()

	imported, err := importer.Parse(file, header.Filename)
	if err != nil {
		var verrs dto.ValidationErrors
		switch {
		case errors.Is(err, importer.ErrUnsupportedFormat):
			builder.Error(http.StatusUnsupportedMediaType, i18n.ErrKeyUnsupportedFile, err)
		case errors.Is(err, importer.ErrNoRows):
			builder.Error(http.StatusUnprocessableEntity, i18n.ErrKeyNoCargoRows, err)
		case errors.As(err, &verrs):
			builder.Fail(verrs)
		default:
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		}
		return
	}

	var queryErrs dto.ValidationErrors
	auto := false
	if raw := c.Query("auto"); raw != "" {
		if auto, err = strconv.ParseBool(raw); err != nil {
			queryErrs.Add("auto", "must be a boolean")
		}
	}
	req := &dto.LoadPlanRequest{
		Auto:        auto,
		Cargo:       imported.Cargo,
		LoadingType: c.Query("loading_type"),
		Unit:        c.Query("unit"),
	}
	if err := dto.Validate(req); err != nil {
		var verrs dto.ValidationErrors
		if !errors.As(err, &verrs) {
			builder.Fail(err)
			return
		}
		queryErrs = append(queryErrs, verrs...)
	}
	if !queryErrs.Empty() {
		builder.Fail(queryErrs)
		return
	}
	if plan, ok := h.plan(c, req); ok {
		builder.Created(planLocation(plan.ID), dto.ImportedPlanResponse{LoadPlan: plan, Warnings: imported.Warnings})
	}
}

// plan validates req and runs the planner. On failure the error response
// is written and ok is false.
func (h *LoadPlanHandler) plan(c *gin.Context, req *dto.LoadPlanRequest) (*model.LoadPlan, bool) {
	builder := NewResponseBuilder(c)

	in, err := req.Build(h.defaults)
	if err != nil {
		builder.Fail(err)
		return nil, false
	}

	plan, err := h.planner.Plan(c.Request.Context(), in)
	if err != nil {
		builder.Fail(err)
		return nil, false
	}

	middleware.SetPlanID(c, plan.ID)
	return plan, true
}

func planLocation(id string) string {
	return "/api/load-plans/" + id
}

// GetPlan handles GET /api/load-plans/:id.
//
// @Summary      Get a load plan
// @Description  Returns a previously computed plan by id
// @Tags         Load Plans
// @Produce      json
// @Param        id path string true "Plan id"
// @Success      200 {object} dto.SuccessResponse{data=model.LoadPlan} "Stored plan"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key or token"
// @Failure      404 {object} dto.ErrorResponse "Plan not found"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/load-plans/{id} [get]
func (h *LoadPlanHandler) GetPlan(c *gin.Context) {
	builder := NewResponseBuilder(c)

	plan, err := h.planner.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}

	middleware.SetPlanID(c, plan.ID)
	builder.SuccessOK(plan)
}

// ListPlans handles GET /api/load-plans.
//
// @Summary      List load plans
// @Description  Returns stored plan summaries, newest first
// @Tags         Load Plans
// @Produce      json
// @Param        limit query int false "Page size (1-100)" default(20)
// @Param        skip query int false "Plans to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.LoadPlanListResponse} "Plan summaries"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key or token"
// @Failure      422 {object} dto.ErrorResponse "Invalid paging parameters"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/load-plans [get]
func (h *LoadPlanHandler) ListPlans(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var errs dto.ValidationErrors
	limit := queryInt(c, "limit", defaultListLimit, 1, maxListLimit, &errs)
	skip := queryInt(c, "skip", 0, 0, -1, &errs)
	if !errs.Empty() {
		builder.Fail(errs)
		return
	}

	items, total, err := h.planner.List(c.Request.Context(), limit, skip)
	if err != nil {
		builder.Fail(err)
		return
	}

	builder.SuccessOK(dto.LoadPlanListResponse{Items: items, Total: total, Limit: limit, Skip: skip})
}

// PlanLogs handles GET /api/load-plans/:id/logs.
//
// @Summary      List the request logs of a plan
// @Description  Returns the stored request logs that created or fetched the plan, newest first
// @Tags         Load Plans
// @Produce      json
// @Param        id path string true "Plan id"
// @Param        level query string false "Log level" Enums(info, warn, error)
// @Param        limit query int false "Page size (1-100)" default(20)
// @Param        skip query int false "Entries to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.PlanLogsResponse} "Plan request logs"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key or token"
// @Failure      404 {object} dto.ErrorResponse "Plan not found"
// @Failure      422 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/load-plans/{id}/logs [get]
func (h *LoadPlanHandler) PlanLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var errs dto.ValidationErrors
	limit := queryInt(c, "limit", defaultListLimit, 1, maxListLimit, &errs)
	skip := queryInt(c, "skip", 0, 0, -1, &errs)
	level := c.Query("level")
	switch level {
	case "", "info", "warn", "error":
	default:
		errs.Add("level", "must be one of info, warn, error")
	}
	if !errs.Empty() {
		builder.Fail(errs)
		return
	}

	ctx := c.Request.Context()
	plan, err := h.planner.Get(ctx, c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}

	opts := model.LogQueryOptions{PlanID: plan.ID, Level: level, Limit: limit, Skip: skip}
	entries, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		builder.Fail(err)
		return
	}
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		builder.Fail(err)
		return
	}

	builder.SuccessOK(dto.PlanLogsResponse{PlanID: plan.ID, Items: entries, Total: total, Limit: limit, Skip: skip})
}

// queryInt parses an integer query parameter within [lo, hi]. A negative hi
// leaves it unbounded above.
func queryInt(c *gin.Context, name string, fallback, lo, hi int, errs *dto.ValidationErrors) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || (hi >= 0 && v > hi) {
		if hi >= 0 {
			errs.Add(name, "must be an integer between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi))
		} else {
			errs.Add(name, "must be an integer of at least "+strconv.Itoa(lo))
		}
		return fallback
	}
	return v
}
