// Command seedcheck loads a trainer seed document into the configured store,
// evaluates the default rules against it and optionally resolves the collected
// Pokémon against PokeAPI, exports the result as a snapshot or prints the
// service metrics gathered along the way.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	"trainerdex/internal/blob"
	"trainerdex/internal/config"
	"trainerdex/internal/core"
	"trainerdex/internal/logging"
	"trainerdex/internal/pokeapi"
	"trainerdex/internal/seed"
	"trainerdex/pkg/domain"
)

var exitFunc = os.Exit

type options struct {
	configPath string
	seedPath   string
	resolve    bool
	export     bool
	metrics    bool
}

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("seedcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.configPath, "config", "", "path to trainerdex TOML config")
	fs.StringVar(&opts.seedPath, "seed", "", "seed YAML to check (default: embedded seed)")
	fs.BoolVar(&opts.resolve, "resolve", false, "look up every collected pokemon on PokeAPI")
	fs.BoolVar(&opts.export, "export", false, "export the seeded store through the configured blob driver")
	fs.BoolVar(&opts.metrics, "metrics", false, "print service metrics in Prometheus text format when done")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return 2
	}
	if err := run(context.Background(), opts, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "seedcheck: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, opts options, stdout io.Writer) (err error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	snap, err := loadSeed(opts.seedPath)
	if err != nil {
		return err
	}

	engine := core.NewDefaultRulesEngine()
	store, err := core.OpenPersistentStore(ctx, cfg.Store, engine)
	if err != nil {
		return err
	}
	if closer, ok := store.(io.Closer); ok {
		defer func() {
			if cerr := closer.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close store: %w", cerr))
			}
		}()
	}
	store.ImportState(snap)

	res, err := evaluate(ctx, store, engine, snap)
	if err != nil {
		return err
	}
	for _, v := range res.Violations {
		logger.Warn("rule violation",
			zap.String("rule", v.Rule),
			zap.String("severity", string(v.Severity)),
			zap.String("entity_id", v.EntityID),
			zap.String("message", v.Message))
	}
	if res.HasBlocking() {
		return domain.RuleViolationError{Result: res}
	}

	reg := prometheus.NewRegistry()
	recorder, err := core.NewPrometheusMetricsRecorder(reg, cfg.Metrics.Namespace)
	if err != nil {
		return err
	}
	svc := core.NewService(store,
		core.WithLogger(logger),
		core.WithLatency(core.NewLatency(cfg.Latency)),
		core.WithMetricsRecorder(recorder),
		core.WithTracer(core.NewLogTracer(logger)),
		core.WithAuditRecorder(core.NewLogAuditRecorder(logger)))
	if err := summarize(ctx, svc, stdout, len(res.Violations)); err != nil {
		return err
	}

	if opts.resolve {
		client := pokeapi.NewFromConfig(cfg.PokeAPI, logger)
		if err := resolveCollected(ctx, client, snap.Trainer, stdout); err != nil {
			return err
		}
	}
	if opts.export {
		dst, err := blob.Open(ctx, cfg.Export)
		if err != nil {
			return err
		}
		info, err := svc.ExportSnapshot(ctx, dst)
		if err != nil {
			return fmt.Errorf("export snapshot: %w", err)
		}
		_, _ = fmt.Fprintf(stdout, "exported %s to %s (%d bytes)\n", info.Key, dst.Driver(), info.Size)
	}
	if opts.metrics {
		return writeMetrics(reg, stdout)
	}
	return nil
}

func writeMetrics(g prometheus.Gatherer, stdout io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(stdout, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func loadSeed(path string) (domain.Snapshot, error) {
	if path == "" {
		return seed.Load()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	return seed.Parse(raw)
}

// evaluate runs engine over every trainer in snap as if each had just been
// created.
func evaluate(ctx context.Context, store domain.PersistentStore, engine *domain.RulesEngine, snap domain.Snapshot) (domain.Result, error) {
	changes := make([]domain.Change, 0, len(snap.OtherTrainers)+1)
	for _, t := range append([]domain.Trainer{snap.Trainer}, snap.OtherTrainers...) {
		changes = append(changes, domain.Change{Entity: domain.EntityTrainer, Action: domain.ActionCreate, After: t})
	}
	var res domain.Result
	err := store.View(ctx, func(view domain.TransactionView) error {
		var err error
		res, err = engine.Evaluate(ctx, view, changes)
		return err
	})
	if err != nil {
		return domain.Result{}, fmt.Errorf("evaluate rules: %w", err)
	}
	return res, nil
}

func summarize(ctx context.Context, svc *core.Service, stdout io.Writer, warnings int) error {
	profile, err := svc.FetchTrainerProfile(ctx)
	if err != nil {
		return err
	}
	trainers, err := svc.FetchOtherTrainers(ctx)
	if err != nil {
		return err
	}
	regions, err := svc.FetchRegions(ctx)
	if err != nil {
		return err
	}
	locations, err := svc.FetchLocations(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "seed ok: trainer %s (%s), %d items, %d directory trainers, %d regions, %d locations, %d warnings\n",
		profile.Name, profile.ID, len(profile.Items), len(trainers), len(regions), len(locations), warnings)
	return err
}

func resolveCollected(ctx context.Context, client *pokeapi.Client, trainer domain.Trainer, stdout io.Writer) error {
	for _, id := range trainer.CollectedPokemon {
		p, err := client.FetchPokemonByID(ctx, id)
		if err != nil {
			return fmt.Errorf("resolve pokemon %d: %w", id, err)
		}
		_, _ = fmt.Fprintf(stdout, "#%03d %s [%s]\n", p.ID, pokeapi.Capitalize(p.Name), strings.Join(p.TypeNames(), "/"))
	}
	return nil
}
