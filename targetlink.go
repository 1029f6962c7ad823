// Package targetlink scores target-disease associations from evidence.
//
// Evidence records, gene metadata, and disease metadata are loaded into a
// database, then a concurrent pipeline aggregates every target's evidence
// into per-disease association documents using harmonic-sum, sum, and max
// scoring methods.
//
// Basic usage:
//
//	client, err := targetlink.New(
//	    targetlink.WithSQLite(".targetlink/data.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Ingest data
//	_, err = client.Load(ctx, loader.KindEvidence, "evidence.jsonl")
//
//	// Score every target with evidence
//	stats, err := client.Score(ctx)
//
//	// Read results
//	assoc, err := client.Associations.Get(ctx, "ENSG00000157764-EFO_0000756")
package targetlink

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/targetlink/targetlink/application/loader"
	"github.com/targetlink/targetlink/application/pipeline"
	"github.com/targetlink/targetlink/domain/association"
	"github.com/targetlink/targetlink/domain/datasource"
	"github.com/targetlink/targetlink/domain/disease"
	"github.com/targetlink/targetlink/domain/evidence"
	"github.com/targetlink/targetlink/domain/gene"
	"github.com/targetlink/targetlink/infrastructure/persistence"
	"github.com/targetlink/targetlink/internal/config"
	"github.com/targetlink/targetlink/internal/database"
	"github.com/targetlink/targetlink/internal/log"
)

// ErrClientClosed is returned by operations on a closed Client.
var ErrClientClosed = errors.New("targetlink client is closed")

// Client is the main entry point for the targetlink library.
//
// Access stores via struct fields:
//
//	client.Associations.Get(ctx, id)
//	client.Evidence.CountForTarget(ctx, targetID)
type Client struct {
	Associations association.Store
	Evidence     evidence.Store
	Genes        gene.Store
	Diseases     disease.Store

	db       database.Database
	cfg      config.AppConfig
	registry datasource.Registry
	pipeline *pipeline.Pipeline
	loader   *loader.Loader
	logger   *log.Logger
	closed   atomic.Bool
}

// New creates a Client with the given options.
func New(opts ...Option) (*Client, error) {
	cc := newClientConfig()
	for _, opt := range opts {
		opt(cc)
	}

	cfg := cc.appConfig
	if !cc.haveAppConf {
		cfg = config.NewAppConfig(cc.appOptions...)
	}

	logger := cc.logger
	if logger == nil {
		logger = log.NewLogger(cfg)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("prepare data dir: %w", err)
	}

	registry, err := resolveRegistry(cc, cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.DBURL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	evidenceStore := persistence.NewEvidenceStore(db)
	associationStore := persistence.NewAssociationStore(db)
	geneStore := persistence.NewGeneStore(db)
	diseaseStore := persistence.NewDiseaseStore(db)

	metrics := pipeline.NewMetrics(cc.registerer)

	client := &Client{
		Associations: associationStore,
		Evidence:     evidenceStore,
		Genes:        geneStore,
		Diseases:     diseaseStore,
		db:           db,
		cfg:          cfg,
		registry:     registry,
		logger:       logger,
	}
	client.pipeline = pipeline.New(cfg, registry, evidenceStore, associationStore, geneStore, diseaseStore, metrics, logger)
	client.loader = loader.New(evidenceStore, geneStore, diseaseStore, cfg.ChunkSize(), logger)

	return client, nil
}

func resolveRegistry(cc *clientConfig, cfg config.AppConfig) (datasource.Registry, error) {
	if cc.registry != nil {
		return *cc.registry, nil
	}
	if path := cfg.ScoringConfigPath(); path != "" {
		registry, err := datasource.LoadRegistry(path)
		if err != nil {
			return datasource.Registry{}, fmt.Errorf("load scoring config: %w", err)
		}
		return registry, nil
	}
	return datasource.DefaultRegistry(), nil
}

// Score runs the scoring pipeline over the given targets, or every target
// with evidence when none are given.
func (c *Client) Score(ctx context.Context, targetIDs ...string) (pipeline.Stats, error) {
	if c.closed.Load() {
		return pipeline.Stats{}, ErrClientClosed
	}
	return c.pipeline.Run(ctx, targetIDs...)
}

// Load ingests a JSON-lines data file of the given kind.
func (c *Client) Load(ctx context.Context, kind loader.Kind, path string) (loader.Stats, error) {
	if c.closed.Load() {
		return loader.Stats{}, ErrClientClosed
	}
	return c.loader.LoadFile(ctx, kind, path)
}

// Registry returns the active datasource registry.
func (c *Client) Registry() datasource.Registry {
	return c.registry
}

// Config returns the resolved configuration.
func (c *Client) Config() config.AppConfig {
	return c.cfg
}

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger {
	return c.logger
}

// Close releases the database connection.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("targetlink client closed")
	return nil
}
