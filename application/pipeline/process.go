package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/targetlink/targetlink/domain/association"
	"github.com/targetlink/targetlink/domain/datasource"
	"github.com/targetlink/targetlink/domain/disease"
	"github.com/targetlink/targetlink/domain/evidence"
	"github.com/targetlink/targetlink/domain/gene"
	"github.com/targetlink/targetlink/internal/config"
	"github.com/targetlink/targetlink/internal/log"
)

// Pipeline wires the producer, scoring, and storage pools over the stores.
type Pipeline struct {
	cfg          config.AppConfig
	registry     datasource.Registry
	evidence     evidence.Store
	associations association.Store
	genes        gene.Store
	diseases     disease.Store
	metrics      *Metrics
	logger       *log.Logger
}

// New creates a Pipeline.
func New(
	cfg config.AppConfig,
	registry datasource.Registry,
	evidenceStore evidence.Store,
	associationStore association.Store,
	geneStore gene.Store,
	diseaseStore disease.Store,
	metrics *Metrics,
	logger *log.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:          cfg,
		registry:     registry,
		evidence:     evidenceStore,
		associations: associationStore,
		genes:        geneStore,
		diseases:     diseaseStore,
		metrics:      metrics,
		logger:       logger,
	}
}

// Stats summarizes a completed pipeline run.
type Stats struct {
	RunID    string
	Targets  int
	Failed   int64
	Bundles  int64
	Stored   int64
	Duration time.Duration
}

// Run scores the given targets, or every target with evidence when none are
// given, and blocks until all associations are stored and flushed. A target
// whose evidence cannot be read is logged, counted, and skipped; storage and
// flush failures abort the run.
func (p *Pipeline) Run(ctx context.Context, targetIDs ...string) (Stats, error) {
	runID := uuid.NewString()
	ctx = log.WithRunID(ctx, runID)
	logger := p.logger.WithContext(ctx)
	start := time.Now()

	if len(targetIDs) == 0 {
		ids, err := p.evidence.TargetIDs(ctx)
		if err != nil {
			return Stats{}, fmt.Errorf("resolve target universe: %w", err)
		}
		targetIDs = ids
	}

	geneLookup, err := gene.BuildLookup(ctx, p.genes)
	if err != nil {
		return Stats{}, fmt.Errorf("build gene lookup: %w", err)
	}
	diseaseLookup, err := disease.BuildLookup(ctx, p.diseases)
	if err != nil {
		return Stats{}, fmt.Errorf("build disease lookup: %w", err)
	}

	logger.Info("starting scoring run",
		"targets", len(targetIDs),
		"genes", geneLookup.Len(),
		"diseases", diseaseLookup.Len(),
		"producers", p.cfg.ProducerCount(),
		"workers", p.cfg.WorkerCount(),
	)

	targets := make(chan string, len(targetIDs))
	for _, id := range targetIDs {
		targets <- id
	}
	close(targets)

	bundles := make(chan Bundle, p.cfg.QueueCapacity())
	scored := make(chan association.Association, p.cfg.QueueCapacity())

	var bundleCount, storedCount, failedCount atomic.Int64

	prod := producer{
		evidence: p.evidence,
		registry: p.registry,
		metrics:  p.metrics,
		logger:   logger,
		bundles:  &bundleCount,
	}
	score := scorer{
		scorer: association.NewScorer(p.registry,
			association.WithBuffer(p.cfg.ScoringBuffer()),
			association.WithScaleFactor(p.cfg.ScaleFactor()),
		),
		genes:    geneLookup,
		diseases: diseaseLookup,
		metrics:  p.metrics,
		logger:   logger,
	}
	store := storer{
		store:     p.associations,
		chunkSize: p.cfg.ChunkSize(),
		metrics:   p.metrics,
		logger:    logger,
		stored:    &storedCount,
	}

	g, gctx := errgroup.WithContext(ctx)

	producers, _ := errgroup.WithContext(gctx)
	for i := 0; i < p.cfg.ProducerCount(); i++ {
		producers.Go(func() error {
			for targetID := range targets {
				err := prod.produce(gctx, targetID, bundles)
				if err == nil {
					continue
				}
				if gctx.Err() != nil {
					return fmt.Errorf("produce %s: %w", targetID, err)
				}
				failedCount.Add(1)
				p.metrics.targetsFailed.Inc()
				logger.Error("skipping unreadable target",
					"target_id", targetID,
					"error", err.Error(),
				)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(bundles)
		return producers.Wait()
	})

	scorers, _ := errgroup.WithContext(gctx)
	for i := 0; i < p.cfg.WorkerCount(); i++ {
		scorers.Go(func() error {
			return score.run(gctx, bundles, scored)
		})
	}
	g.Go(func() error {
		defer close(scored)
		return scorers.Wait()
	})

	storers, _ := errgroup.WithContext(gctx)
	for i := 0; i < p.cfg.WorkerCount(); i++ {
		storers.Go(func() error {
			return store.run(gctx, scored)
		})
	}
	g.Go(func() error {
		return storers.Wait()
	})

	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("scoring run %s: %w", runID, err)
	}

	if err := p.associations.Flush(ctx); err != nil {
		return Stats{}, fmt.Errorf("flush associations: %w", err)
	}

	stats := Stats{
		RunID:    runID,
		Targets:  len(targetIDs),
		Failed:   failedCount.Load(),
		Bundles:  bundleCount.Load(),
		Stored:   storedCount.Load(),
		Duration: time.Since(start),
	}
	p.metrics.runDurationSeconds.Observe(stats.Duration.Seconds())

	logger.Info("scoring run complete",
		"targets", stats.Targets,
		"failed", stats.Failed,
		"bundles", stats.Bundles,
		"stored", stats.Stored,
		"duration", stats.Duration.String(),
	)
	return stats, nil
}
