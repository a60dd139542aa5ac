package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/domain/model"
	"github.com/guttosm/cargo-loader/internal/loading"
	"github.com/guttosm/cargo-loader/internal/metrics"
	"github.com/guttosm/cargo-loader/internal/repository"
	"github.com/guttosm/cargo-loader/internal/service/cache"
)

const planIDKeyPrefix = "id:"

// LoadPlanner computes, stores and retrieves load plans.
type LoadPlanner interface {
	Plan(ctx context.Context, in dto.LoadPlanInput) (*model.LoadPlan, error)
	Get(ctx context.Context, id string) (*model.LoadPlan, error)
	List(ctx context.Context, limit, skip int) ([]model.LoadPlanSummary, int64, error)
	// InvalidateCache drops every cached plan, e.g. after a catalog change.
	InvalidateCache()
}

// PlannerOption configures a LoadPlannerService.
type PlannerOption func(*LoadPlannerService)

// WithPlanCache enables caching of computed plans.
func WithPlanCache(c cache.Cache[model.LoadPlan]) PlannerOption {
	return func(s *LoadPlannerService) {
		s.cache = c
	}
}

// WithPlanRepository stores plans in MongoDB.
func WithPlanRepository(repo repository.LoadPlanRepositoryInterface) PlannerOption {
	return func(s *LoadPlannerService) {
		s.plans = repo
	}
}

// WithTimeout bounds one calculation. A calculation cut short returns a partial
// plan. Zero means no bound.
func WithTimeout(d time.Duration) PlannerOption {
	return func(s *LoadPlannerService) {
		s.timeout = d
	}
}

// LoadPlannerService implements LoadPlanner on top of loading.Loader.
type LoadPlannerService struct {
	loader   *loading.Loader
	catalogs ContainerCatalogService
	plans    repository.LoadPlanRepositoryInterface
	cache    cache.Cache[model.LoadPlan]
	timeout  time.Duration
	flight   singleflight.Group
	now      func() time.Time
}

// NewLoadPlanner creates a planner. catalogs resolves requests that name no
// containers.
func NewLoadPlanner(loader *loading.Loader, catalogs ContainerCatalogService, opts ...PlannerOption) *LoadPlannerService {
	s := &LoadPlannerService{
		loader:   loader,
		catalogs: catalogs,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan returns the plan for in, reusing a cached or stored plan computed for
// an identical request. Identical requests in flight share one calculation.
//
// The calculation is bounded by the planner timeout only: a caller that goes
// away gets ctx.Err() while the calculation carries on for the others and is
// stored for a retry.
func (s *LoadPlannerService) Plan(ctx context.Context, in dto.LoadPlanInput) (*model.LoadPlan, error) {
	in = s.resolveCatalog(ctx, in)
	hash := s.fingerprint(in)

	if plan, ok := s.lookup(ctx, hash); ok {
		return plan, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(hash, func() (interface{}, error) {
		return s.compute(detached, in, hash)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		plan := *res.Val.(*model.LoadPlan)
		if res.Shared {
			log.Debug().Str("plan_id", plan.ID).Msg("load plan shared with concurrent request")
		}
		return &plan, nil
	}
}

// resolveCatalog fills in the active catalog for requests that name no
// containers, falling back to automatic selection.
func (s *LoadPlannerService) resolveCatalog(ctx context.Context, in dto.LoadPlanInput) dto.LoadPlanInput {
	if !in.UsesCatalog() {
		return in
	}
	if s.catalogs != nil {
		catalog, err := s.catalogs.Active(ctx)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("active catalog unavailable, using automatic selection")
		case catalog.Source == CatalogSourceDatabase:
			in.Containers = catalog.Containers
			return in
		}
	}
	in.Auto = true
	return in
}

func (s *LoadPlannerService) lookup(ctx context.Context, hash string) (*model.LoadPlan, bool) {
	if s.cache != nil {
		if plan, ok := s.cache.Get(hash); ok {
			return &plan, true
		}
	}
	if s.plans == nil {
		return nil, false
	}
	plan, err := s.plans.FindByRequestHash(ctx, hash)
	if err != nil {
		log.Warn().Err(err).Msg("stored plan lookup failed")
		return nil, false
	}
	if plan == nil {
		return nil, false
	}
	s.remember(*plan)
	return plan, true
}

func (s *LoadPlannerService) compute(ctx context.Context, in dto.LoadPlanInput, hash string) (*model.LoadPlan, error) {
	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := s.now()
	result, err := s.loader.Load(runCtx, request(in))
	duration := s.now().Sub(start)

	partial := errors.Is(err, loading.ErrCanceled)
	if err != nil && !partial {
		metrics.RecordLoadPlan(duration, "error", 0, nil, 0)
		return nil, fmt.Errorf("load plan: %w", err)
	}

	plan := buildPlan(result, in)
	plan.ID = uuid.NewString()
	plan.RequestHash = hash
	plan.Partial = partial
	plan.DurationMs = duration.Milliseconds()
	plan.CreatedAt = start.UTC()

	status := "success"
	if partial {
		status = "partial"
		log.Warn().Err(err).Str("plan_id", plan.ID).Int("loaded", plan.Loaded).Msg("load plan canceled, returning partial result")
	}
	shares := make([]float64, len(plan.Containers))
	for i, c := range plan.Containers {
		shares[i] = c.Stats.VolumeShare
	}
	metrics.RecordLoadPlan(duration, status, len(plan.Containers), shares, plan.Requested-plan.Loaded)

	if s.plans != nil {
		saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := s.plans.Save(saveCtx, &plan); err != nil {
			log.Error().Err(err).Str("plan_id", plan.ID).Msg("failed to store load plan")
		}
		cancel()
	}
	if !partial {
		s.remember(plan)
	}
	return &plan, nil
}

func (s *LoadPlannerService) remember(plan model.LoadPlan) {
	if s.cache == nil {
		return
	}
	s.cache.Set(plan.RequestHash, plan)
	s.cache.Set(planIDKeyPrefix+plan.ID, plan)
}

// Get returns a plan by id.
func (s *LoadPlannerService) Get(ctx context.Context, id string) (*model.LoadPlan, error) {
	if s.cache != nil {
		if plan, ok := s.cache.Get(planIDKeyPrefix + id); ok {
			return &plan, nil
		}
	}
	if s.plans == nil {
		return nil, ErrPlanNotFound
	}
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// List returns stored plan summaries, newest first, and the total count.
func (s *LoadPlannerService) List(ctx context.Context, limit, skip int) ([]model.LoadPlanSummary, int64, error) {
	if s.plans == nil {
		return nil, 0, ErrRepositoryNotConfigured
	}
	items, err := s.plans.List(ctx, limit, skip)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.plans.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *LoadPlannerService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

func request(in dto.LoadPlanInput) loading.Request {
	req := loading.Request{
		Shipments:   in.Shipments,
		Auto:        in.Auto,
		LoadingType: in.LoadingType,
	}
	if in.Auto {
		return req
	}
	req.Containers = make(map[model.ContainerSpec]int, len(in.Containers))
	for _, e := range in.Containers {
		switch {
		case e.Count <= 0:
			req.Containers[e.ContainerSpec] = loading.Unlimited
		case req.Containers[e.ContainerSpec] != loading.Unlimited:
			req.Containers[e.ContainerSpec] += e.Count
		}
	}
	return req
}

// fingerprint identifies the request together with the loader settings, so
// a changed threshold never serves a stale plan.
func (s *LoadPlannerService) fingerprint(in dto.LoadPlanInput) string {
	lines := make([]string, 0, len(in.Shipments)+len(in.Containers)+2)
	for spec, n := range in.Shipments {
		lines = append(lines, fmt.Sprintf("s|%s|%+v|%d", in.CargoIDs[spec], spec, n))
	}
	if !in.Auto {
		for _, e := range in.Containers {
			lines = append(lines, fmt.Sprintf("c|%+v|%d", e.ContainerSpec, max(e.Count, 0)))
		}
	}
	slices.Sort(lines)
	lines = append(lines,
		"auto|"+strconv.FormatBool(in.Auto),
		"type|"+string(in.LoadingType),
		s.loader.Settings(),
	)
	return strconv.FormatUint(xxhash.Sum64String(strings.Join(lines, "\n")), 16)
}

func buildPlan(result loading.Result, in dto.LoadPlanInput) model.LoadPlan {
	plan := model.LoadPlan{
		LoadingType: in.LoadingType,
		Unit:        model.PlanUnit,
		Containers:  make([]model.PlannedContainer, 0, len(result.Containers)),
		Leftovers:   []model.Leftover{},
		Requested:   in.Quantity(),
		Loaded:      result.Loaded(),
		Rounds:      result.Rounds,
	}

	for _, c := range result.Containers {
		planned := model.PlannedContainer{
			Spec:       c.Spec(),
			Cargos:     make(map[string]model.ShipmentSpec),
			LoadPoints: make([]model.LoadPoint, 0, c.Len()),
		}
		for _, p := range c.LoadingOrder() {
			id := in.CargoIDs[p.Shipment.Origin]
			planned.Cargos[id] = p.Shipment.Origin
			v := p.Shipment.Spec.Volume
			planned.LoadPoints = append(planned.LoadPoints, model.LoadPoint{
				X:       p.Point.X,
				Y:       p.Point.Y,
				Z:       p.Point.Z,
				CargoID: id,
				Length:  v.Length,
				Width:   v.Width,
				Height:  v.Height,
			})
		}
		stats := c.Statistics()
		planned.Stats = model.ContainerStats{
			Shipments:    stats.Shipments,
			LoadedWeight: stats.LoadedWeight,
			LoadedVolume: stats.LoadedVolume,
			VolumeShare:  stats.VolumeShare(c.Spec()),
			LoadedLength: stats.LoadedLength,
			LoadedWidth:  stats.LoadedWidth,
			LDM:          stats.LDM(),
			FloorShare:   stats.FloorShare(c.Spec()),
		}
		plan.Containers = append(plan.Containers, planned)
	}

	for spec, n := range result.Leftover {
		if n > 0 {
			plan.Leftovers = append(plan.Leftovers, model.Leftover{CargoID: in.CargoIDs[spec], Shipment: spec, Count: n})
		}
	}
	slices.SortFunc(plan.Leftovers, func(a, b model.Leftover) int {
		return cmp.Compare(cargoOrder(a.CargoID), cargoOrder(b.CargoID))
	})
	return plan
}

// cargoOrder sorts numeric cargo ids numerically.
func cargoOrder(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0
	}
	return n
}
