package loading

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// ErrCanceled is returned when the context ends between rounds. The partial
// result is returned alongside it.
var ErrCanceled = errors.New("loading: canceled")

// Unlimited marks a container type with no availability limit.
const Unlimited = -1

// Request is the input of one Load call.
type Request struct {
	Shipments map[model.ShipmentSpec]int
	// Containers maps each type to the units on hand. Non-positive counts
	// other than Unlimited mean none.
	Containers map[model.ContainerSpec]int
	// Auto ignores Containers and uses model.AutoContainers without limit.
	Auto        bool
	LoadingType model.LoadingType
}

// Result is the output of one Load call.
type Result struct {
	Containers []*Container
	Leftover   map[model.ShipmentSpec]int
	Rounds     int
}

// Loaded returns the number of shipments placed across all containers.
func (r Result) Loaded() int {
	n := 0
	for _, c := range r.Containers {
		n += c.Len()
	}
	return n
}

// LeftoverCount returns the number of shipments that were not placed.
func (r Result) LeftoverCount() int {
	n := 0
	for _, c := range r.Leftover {
		n += c
	}
	return n
}

// Option configures a Loader.
type Option func(*Loader)

// WithSelector replaces the default container selector.
func WithSelector(s ContainerSelector) Option {
	return func(l *Loader) {
		l.selector = s
	}
}

// WithParallelism caps concurrent trial fills per round. Values below 1 mean
// one per CPU.
func WithParallelism(n int) Option {
	return func(l *Loader) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		l.parallel = n
	}
}

// WithLogger sets the logger used for round and completion events.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.log = logger
	}
}

// Loader runs the greedy multi-container loading rounds. It is stateless
// between calls and safe for concurrent use.
type Loader struct {
	selector ContainerSelector
	parallel int
	log      zerolog.Logger
}

// NewLoader returns a Loader with default thresholds and one trial per CPU.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		selector: NewContainerSelector(),
		parallel: runtime.GOMAXPROCS(0),
		log:      log.Logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Settings describes the options that change results, for cache keys.
func (l *Loader) Settings() string {
	return fmt.Sprintf("volume=%g weight=%g", l.selector.VolumeThreshold, l.selector.WeightThreshold)
}

type stock struct {
	spec  model.ContainerSpec
	count int
}

func (s stock) available() bool { return s.count == Unlimited || s.count > 0 }

type trial struct {
	container *Container
	counts    map[model.ShipmentSpec]int
}

// Load packs req.Shipments into as few containers as the heuristic finds.
// Shipments that cannot be placed are reported in Result.Leftover.
func (l *Loader) Load(ctx context.Context, req Request) (Result, error) {
	remaining := make(map[model.ShipmentSpec]int, len(req.Shipments))
	total := 0
	for spec, n := range req.Shipments {
		if n > 0 {
			remaining[spec] = n
			total += n
		}
	}
	order := sortedSpecs(remaining)
	stocks := catalog(req)
	points := OrderFor(req.LoadingType)
	ids := &IDAllocator{}

	var result Result
	var err error
	for total > 0 {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ErrCanceled, ctxErr)
			break
		}

		candidates := l.candidates(stocks, DemandOf(remaining))
		if len(candidates) == 0 {
			l.log.Debug().Int("remaining", total).Msg("no container type left")
			break
		}

		trials := l.fillRound(candidates, order, remaining, points, ids, total)
		best := selectTrial(trials)
		if best == nil {
			l.log.Debug().Int("remaining", total).Msg("no container type loads anything")
			break
		}

		result.Containers = append(result.Containers, best.container)
		result.Rounds++
		for i := range stocks {
			if stocks[i].spec == best.container.Spec() && stocks[i].count > 0 {
				stocks[i].count--
				break
			}
		}
		for spec, n := range best.counts {
			remaining[spec] -= n
			total -= n
			if remaining[spec] <= 0 {
				delete(remaining, spec)
			}
		}

		stats := best.container.Statistics()
		l.log.Debug().
			Int("round", result.Rounds).
			Str("container", best.container.Spec().Label()).
			Int("shipments", stats.Shipments).
			Int64("loaded_volume", stats.LoadedVolume).
			Int("remaining", total).
			Msg("container committed")
	}

	for _, c := range result.Containers {
		l.reorder(c)
	}
	result.Leftover = remaining

	l.log.Info().
		Int("containers", len(result.Containers)).
		Int("loaded", result.Loaded()).
		Int("left", total).
		Msg("loaded")
	return result, err
}

// catalog returns the container stock in a deterministic order: the auto
// catalog as declared, an explicit one by volume then labels.
func catalog(req Request) []stock {
	if req.Auto {
		out := make([]stock, len(model.AutoContainers))
		for i, spec := range model.AutoContainers {
			out[i] = stock{spec: spec, count: Unlimited}
		}
		return out
	}

	out := make([]stock, 0, len(req.Containers))
	for spec, n := range req.Containers {
		if n == Unlimited || n > 0 {
			out = append(out, stock{spec: spec, count: n})
		}
	}
	slices.SortFunc(out, func(a, b stock) int {
		return cmp.Or(
			cmp.Compare(a.spec.Volume(), b.spec.Volume()),
			cmp.Compare(a.spec.LiftingCapacity, b.spec.LiftingCapacity),
			cmp.Compare(a.spec.Type, b.spec.Type),
			cmp.Compare(a.spec.Name, b.spec.Name),
			cmp.Compare(a.spec.Length, b.spec.Length),
			cmp.Compare(a.spec.Width, b.spec.Width),
			cmp.Compare(a.spec.Height, b.spec.Height),
		)
	})
	return out
}

// candidates lists the available types with the selector's choice first.
func (l *Loader) candidates(stocks []stock, d Demand) []model.ContainerSpec {
	specs := make([]model.ContainerSpec, 0, len(stocks))
	for _, s := range stocks {
		if s.available() {
			specs = append(specs, s.spec)
		}
	}
	chosen, ok := l.selector.Select(specs, d)
	if !ok {
		return specs
	}
	i := slices.Index(specs, chosen)
	copy(specs[1:i+1], specs[:i])
	specs[0] = chosen
	return specs
}

// fillRound fills one fresh container per candidate concurrently. Each trial
// reads the shared remaining map without mutating it.
func (l *Loader) fillRound(
	candidates []model.ContainerSpec,
	order []model.ShipmentSpec,
	remaining map[model.ShipmentSpec]int,
	points PointOrder,
	ids *IDAllocator,
	total int,
) []trial {
	trials := make([]trial, len(candidates))
	var g errgroup.Group
	g.SetLimit(l.parallel)
	for i, spec := range candidates {
		start := ids.Reserve(total)
		block := &idBlock{next: start, end: start + int64(total)}
		g.Go(func() error {
			trials[i] = fill(spec, order, remaining, points, block)
			return nil
		})
	}
	_ = g.Wait()
	return trials
}

// selectTrial returns the trial with the strictly greatest loaded volume,
// first seen on ties, or nil when nothing was loaded.
func selectTrial(trials []trial) *trial {
	var best *trial
	for i := range trials {
		v := trials[i].container.Statistics().LoadedVolume
		if v <= 0 {
			continue
		}
		if best == nil || v > best.container.Statistics().LoadedVolume {
			best = &trials[i]
		}
	}
	return best
}

func fill(
	spec model.ContainerSpec,
	order []model.ShipmentSpec,
	remaining map[model.ShipmentSpec]int,
	points PointOrder,
	ids *idBlock,
) trial {
	c := NewContainer(spec)
	counts := make(map[model.ShipmentSpec]int)
	for _, s := range order {
		want := remaining[s]
		if want <= 0 {
			continue
		}
		variants := s.RotationVariants()
		for counts[s] < want {
			point, variant, ok := findPlace(c, variants, points)
			if !ok {
				break
			}
			c.Place(point, Shipment{ID: ids.take(), Spec: variant, Origin: s})
			counts[s]++
		}
	}
	return trial{container: c, counts: counts}
}

// findPlace tries every variant against every free corner, variants first.
func findPlace(c *Container, variants []model.ShipmentSpec, order PointOrder) (model.Point, model.ShipmentSpec, bool) {
	points := c.OpeningPoints(order)
	for _, v := range variants {
		for _, p := range points {
			if c.CanPlace(p, v) {
				return p, v, true
			}
		}
	}
	return model.Point{}, model.ShipmentSpec{}, false
}

// reorder replays the placements of c in a sequence a loader could follow:
// walking the vertical point order, one x column at a time, always placing a
// shipment that is already supported.
func (l *Loader) reorder(c *Container) {
	original := c.LoadingOrder()
	pending := make(map[model.Point]Shipment, len(original))
	for _, p := range original {
		pending[p.Point] = p.Shipment
	}
	c.Unload()

	for len(pending) > 0 {
		points := make([]model.Point, 0, len(pending))
		for p := range pending {
			points = append(points, p)
		}
		SortPoints(points, Vertical)

		placed := false
		var last *model.Point
		for _, p := range points {
			s := pending[p]
			if !l.canReplay(c, p, s) {
				continue
			}
			if last != nil && last.X != p.X {
				break
			}
			c.Place(p, s)
			delete(pending, p)
			placed = true
			last = &p
		}

		if !placed {
			l.log.Warn().
				Str("container", c.Spec().Label()).
				Int("pending", len(pending)).
				Msg("loading order stalled, keeping fill order")
			c.Unload()
			for _, p := range original {
				c.Place(p.Point, p.Shipment)
			}
			return
		}
	}
}

func (l *Loader) canReplay(c *Container, p model.Point, s Shipment) bool {
	if _, ok := c.space.byOpen[p]; !ok {
		return false
	}
	return c.CanPlace(p, s.Spec)
}
