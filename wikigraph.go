package wikigraph

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/siherrmann/wikigraph/checkpoint"
	"github.com/siherrmann/wikigraph/core/crawl"
	"github.com/siherrmann/wikigraph/core/graph"
	"github.com/siherrmann/wikigraph/core/pipeline"
	"github.com/siherrmann/wikigraph/database"
	"github.com/siherrmann/wikigraph/export"
	"github.com/siherrmann/wikigraph/helper"
	"github.com/siherrmann/wikigraph/model"
	"github.com/siherrmann/wikigraph/source"
	loadSql "github.com/siherrmann/wikigraph/sql"
)

// Wikigraph provides a unified interface to the crawl, checkpoint and
// graph assembly components
type Wikigraph struct {
	Config   model.CrawlConfig
	Store    checkpoint.Store
	Source   pipeline.PageSource
	Pipeline *pipeline.Pipeline // Optional classification pipeline
	DB       *helper.Database   // Only set when using the postgres store
	// Logging
	log *slog.Logger
}

// NewWikigraph creates a new Wikigraph instance backed by the per-entity
// CSV checkpoint store in config.OutputDir and the live Wikipedia API
func NewWikigraph(config model.CrawlConfig) (*Wikigraph, error) {
	logger := newLogger()

	store, err := checkpoint.NewCSVStore(config.OutputDir)
	if err != nil {
		return nil, helper.NewError("create csv checkpoint store", err)
	}

	return &Wikigraph{
		Config: config,
		Store:  store,
		Source: source.NewWikipedia(config, logger),
		log:    logger,
	}, nil
}

// NewWikigraphWithDatabase creates a new Wikigraph instance backed by a
// postgres checkpoint store instead of CSV files
func NewWikigraphWithDatabase(config model.CrawlConfig, dbConfig *helper.DatabaseConfiguration) (*Wikigraph, error) {
	logger := newLogger()

	db := helper.NewDatabase("wikigraph", dbConfig, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload if functions already exist
	checkpoints, err := database.NewCheckpointsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create checkpoints handler", err)
	}

	return &Wikigraph{
		Config: config,
		Store:  checkpoints,
		Source: source.NewWikipedia(config, logger),
		DB:     db,
		log:    logger,
	}, nil
}

// Close closes the database connection if one is open
func (w *Wikigraph) Close() error {
	if w.DB != nil && w.DB.Instance != nil {
		return w.DB.Instance.Close()
	}
	return nil
}

// SetPipeline sets the classification pipeline for crawling
func (w *Wikigraph) SetPipeline(pipeline *pipeline.Pipeline) {
	w.Pipeline = pipeline
}

// UseDefaultPipeline sets up the default classification pipeline.
// This uses the distilbert NER model for person classification and the
// embedded first-name table for gender inference.
func (w *Wikigraph) UseDefaultPipeline() error {
	p, err := pipeline.DefaultPipeline()
	if err != nil {
		return helper.NewError("create default pipeline", err)
	}

	w.Pipeline = p
	return nil
}

// Crawl processes the seed topic and every person linked from it,
// checkpointing each entity's link list through the configured store
func (w *Wikigraph) Crawl(ctx context.Context, seed string) (*crawl.Result, error) {
	if w.Pipeline == nil {
		return nil, helper.NewError("crawl", fmt.Errorf("pipeline not set, use SetPipeline() first"))
	}

	processor, err := pipeline.NewProcessor(w.Source, w.Pipeline, w.log)
	if err != nil {
		return nil, helper.NewError("create entity processor", err)
	}

	scheduler, err := crawl.NewScheduler(processor, w.Store, w.Config.Workers, w.log)
	if err != nil {
		return nil, helper.NewError("create crawl scheduler", err)
	}

	return scheduler.Run(ctx, seed)
}

// BuildGraph assembles the directed person graph from the checkpoints
// written by a crawl run
func (w *Wikigraph) BuildGraph(result *crawl.Result) (*model.Graph, error) {
	if result == nil {
		return nil, helper.NewError("build graph", fmt.Errorf("crawl result is nil"))
	}

	builder, err := graph.NewBuilder(w.Store, w.log)
	if err != nil {
		return nil, helper.NewError("create graph builder", err)
	}

	return builder.Build(result.Seed, result.Frontier)
}

// ExportGraphML writes the graph to the given path as GraphML
func (w *Wikigraph) ExportGraphML(g *model.Graph, path string) error {
	err := export.WriteGraphML(g, path)
	if err != nil {
		return helper.NewError("export graphml", err)
	}

	w.log.Info("Exported graph", slog.String("path", path), slog.Int("nodes", g.NodeCount()), slog.Int("edges", g.EdgeCount()))
	return nil
}

// GraphMLPath returns the default export path for a topic's graph,
// <output dir>/<Topic>_Graph.graphml with spaces replaced by underscores
func (w *Wikigraph) GraphMLPath(topic string) string {
	name := strings.ReplaceAll(strings.TrimSpace(topic), " ", "_")
	return filepath.Join(w.Config.OutputDir, fmt.Sprintf("%v_Graph.graphml", name))
}

// Run crawls the seed topic, assembles the graph and exports it to the
// default GraphML path. It returns the export path.
func (w *Wikigraph) Run(ctx context.Context, seed string) (string, error) {
	result, err := w.Crawl(ctx, seed)
	if err != nil {
		return "", err
	}

	g, err := w.BuildGraph(result)
	if err != nil {
		return "", err
	}

	path := w.GraphMLPath(result.Seed)
	err = w.ExportGraphML(g, path)
	if err != nil {
		return "", err
	}
	return path, nil
}

func newLogger() *slog.Logger {
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	return slog.New(helper.NewPrettyHandler(os.Stdout, opts))
}
