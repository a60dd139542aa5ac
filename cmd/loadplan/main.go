// Command loadplan computes a load plan for a shipment sheet without a server.
//
// Usage:
//
//	loadplan [flags] shipments.xlsx
//
// Containers are given as TYPE:LxWxH:CAPACITY[:COUNT] in the -unit of the
// sheet; without any, the standard ISO containers are chosen automatically.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/cargo-loader/config"
	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/importer"
	"github.com/guttosm/cargo-loader/internal/loading"
	"github.com/guttosm/cargo-loader/internal/logger"
	"github.com/guttosm/cargo-loader/internal/service"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "loadplan:", err)
		os.Exit(1)
	}
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "loadplan:", err)
		}
		os.Exit(1)
	}
}

// containerFlags collects repeated -container values.
type containerFlags []dto.ContainerRequest

func (f *containerFlags) String() string {
	parts := make([]string, len(*f))
	for i, c := range *f {
		parts[i] = fmt.Sprintf("%s:%gx%gx%g:%d:%d", c.Type, c.Length, c.Width, c.Height, c.LiftingCapacity, c.Count)
	}
	return strings.Join(parts, ",")
}

func (f *containerFlags) Set(value string) error {
	c, err := parseContainer(value)
	if err != nil {
		return err
	}
	*f = append(*f, c)
	return nil
}

// parseContainer reads TYPE:LxWxH:CAPACITY[:COUNT]. A missing count means
// unlimited.
func parseContainer(s string) (dto.ContainerRequest, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return dto.ContainerRequest{}, fmt.Errorf("container %q: want TYPE:LxWxH:CAPACITY[:COUNT]", s)
	}

	dims := strings.Split(strings.ToLower(parts[1]), "x")
	if len(dims) != 3 {
		return dto.ContainerRequest{}, fmt.Errorf("container %q: dimensions must be LxWxH", s)
	}
	var size [3]float64
	for i, d := range dims {
		v, err := strconv.ParseFloat(strings.TrimSpace(d), 64)
		if err != nil {
			return dto.ContainerRequest{}, fmt.Errorf("container %q: %w", s, err)
		}
		size[i] = v
	}

	capacity, err := strconv.Atoi(parts[2])
	if err != nil {
		return dto.ContainerRequest{}, fmt.Errorf("container %q: capacity: %w", s, err)
	}
	c := dto.ContainerRequest{
		Type:            parts[0],
		Length:          size[0],
		Width:           size[1],
		Height:          size[2],
		LiftingCapacity: capacity,
	}
	if len(parts) == 4 {
		if c.Count, err = strconv.Atoi(parts[3]); err != nil {
			return dto.ContainerRequest{}, fmt.Errorf("container %q: count: %w", s, err)
		}
	}
	return c, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	defaults := config.Load().Loading

	fs := flag.NewFlagSet("loadplan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var containers containerFlags
	fs.Var(&containers, "container", "container type TYPE:LxWxH:CAPACITY[:COUNT]; repeatable")
	unit := fs.String("unit", "cm", "unit of every length: mm, cm, dm or m")
	loadingType := fs.String("loading-type", defaults.DefaultLoadingType, "stable or compact")
	volumeThreshold := fs.Float64("volume-threshold", defaults.VolumeThreshold, "cargo volume share that triggers a larger container")
	weightThreshold := fs.Float64("weight-threshold", defaults.WeightThreshold, "cargo weight share that triggers a larger container")
	timeout := fs.Duration("timeout", defaults.Timeout, "calculation time limit")
	output := fs.String("o", "", "write the plan to this file instead of stdout")
	indent := fs.Bool("indent", true, "indent the JSON output")
	verbose := fs.Bool("v", false, "log engine rounds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("exactly one shipment file is required")
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger.Init(level, true)

	req, err := readShipments(fs.Arg(0))
	if err != nil {
		return err
	}
	req.Containers = containers
	req.Auto = len(containers) == 0
	req.Unit = *unit
	req.LoadingType = *loadingType

	if err := dto.Validate(&req); err != nil {
		return err
	}
	in, err := req.Build(dto.Defaults{UnitScale: defaults.UnitScale})
	if err != nil {
		return err
	}

	loader := loading.NewLoader(
		loading.WithSelector(loading.ContainerSelector{VolumeThreshold: *volumeThreshold, WeightThreshold: *weightThreshold}),
		loading.WithParallelism(defaults.Parallelism),
		loading.WithLogger(logger.Component("loading")),
	)
	planner := service.NewLoadPlanner(loader, service.NewContainerCatalogService(nil), service.WithTimeout(*timeout))

	start := time.Now()
	plan, err := planner.Plan(ctx, in)
	if err != nil {
		return err
	}
	log.Info().
		Str("plan_id", plan.ID).
		Int("containers", len(plan.Containers)).
		Int("loaded", plan.Loaded).
		Int("requested", plan.Requested).
		Dur("elapsed", time.Since(start)).
		Msg("Load plan computed")
	if len(plan.Leftovers) > 0 {
		fmt.Fprintf(stderr, "%d of %d shipments did not fit\n", plan.Requested-plan.Loaded, plan.Requested)
	}

	out := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	if *indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(plan)
}

func readShipments(path string) (dto.LoadPlanRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return dto.LoadPlanRequest{}, err
	}
	defer f.Close()

	res, err := importer.Parse(f, path)
	for _, w := range res.Warnings {
		log.Warn().Str("file", path).Msg(w)
	}
	if err != nil {
		return dto.LoadPlanRequest{}, fmt.Errorf("%s: %w", path, err)
	}
	return dto.LoadPlanRequest{Cargo: res.Cargo}, nil
}
