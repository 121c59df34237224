// Package crawl orchestrates the one-level crawl: process the seed topic,
// then every person discovered on the seed page, checkpointing each
// entity so interrupted runs resume instead of restarting.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/wikigraph/checkpoint"
	"github.com/siherrmann/wikigraph/helper"
	"github.com/siherrmann/wikigraph/model"
	"golang.org/x/sync/errgroup"
)

// EntityProcessor computes the link list of one entity
type EntityProcessor interface {
	Process(ctx context.Context, entity string) (model.LinkList, error)
}

// Result is the outcome of a crawl run, handed to the graph builder.
// The frontier is the set of persons discovered directly on the seed
// page, sorted lexicographically by name, with first-write-wins genders.
type Result struct {
	Seed     string
	Frontier []model.PersonRecord
}

// Scheduler drives the entity processor over the seed and its frontier
type Scheduler struct {
	processor EntityProcessor
	store     checkpoint.Store
	workers   int
	log       *slog.Logger
}

// NewScheduler creates a new crawl scheduler. workers bounds the frontier
// worker pool, 1 reproduces strictly sequential processing.
func NewScheduler(processor EntityProcessor, store checkpoint.Store, workers int, logger *slog.Logger) (*Scheduler, error) {
	if processor == nil {
		return nil, helper.NewError("processor validation", fmt.Errorf("entity processor is nil"))
	}
	if store == nil {
		return nil, helper.NewError("store validation", fmt.Errorf("checkpoint store is nil"))
	}
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		processor: processor,
		store:     store,
		workers:   workers,
		log:       logger,
	}, nil
}

// Run processes the seed and every person in its frontier, exactly one
// level of breadth. Entities with an existing checkpoint are skipped, so
// rerunning against a populated store performs no additional fetches.
func (s *Scheduler) Run(ctx context.Context, seed string) (*Result, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return nil, helper.NewError("seed validation", fmt.Errorf("seed entity is empty"))
	}

	runID := uuid.New()
	start := time.Now()
	s.log.Info("Starting crawl", slog.String("run_id", runID.String()), slog.String("seed", seed))

	seedLinks, err := s.ensureProcessed(ctx, seed)
	if err != nil {
		return nil, err
	}

	frontier := buildFrontier(seedLinks)
	s.log.Info("Loaded frontier", slog.String("seed", seed), slog.Int("persons", len(frontier)))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for index, person := range frontier {
		group.Go(func() error {
			has, err := s.store.Has(person.Name)
			if err != nil {
				return helper.NewError("check checkpoint", err)
			}
			if has {
				s.log.Info(fmt.Sprintf("(%d/%d) Already processed, skipping", index+1, len(frontier)), slog.String("entity", person.Name))
				return nil
			}

			s.log.Info(fmt.Sprintf("(%d/%d) Processing", index+1, len(frontier)), slog.String("entity", person.Name))
			links, err := s.processor.Process(groupCtx, person.Name)
			if err != nil {
				return err
			}
			if err := s.store.Put(person.Name, links); err != nil {
				return helper.NewError("persist checkpoint", err)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	s.log.Info("Finished crawl",
		slog.String("run_id", runID.String()),
		slog.String("seed", seed),
		slog.Int("frontier", len(frontier)),
		slog.Duration("took", time.Since(start)),
	)

	return &Result{Seed: seed, Frontier: frontier}, nil
}

// ensureProcessed returns the seed's link list, processing and
// checkpointing it only when no checkpoint exists yet
func (s *Scheduler) ensureProcessed(ctx context.Context, seed string) (model.LinkList, error) {
	has, err := s.store.Has(seed)
	if err != nil {
		return nil, helper.NewError("check checkpoint", err)
	}
	if has {
		s.log.Info("Seed already processed, loading frontier from checkpoint", slog.String("seed", seed))
		links, err := s.store.Get(seed)
		if err != nil {
			return nil, helper.NewError("load checkpoint", err)
		}
		return links, nil
	}

	links, err := s.processor.Process(ctx, seed)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(seed, links); err != nil {
		return nil, helper.NewError("persist checkpoint", err)
	}
	return links, nil
}

// buildFrontier deduplicates the seed's link list into the frontier.
// The first observed gender for a name wins. The frontier is sorted so
// the visiting order is stable across runs.
func buildFrontier(links model.LinkList) []model.PersonRecord {
	seen := map[string]struct{}{}
	frontier := make([]model.PersonRecord, 0, len(links))
	for _, record := range links {
		name := strings.TrimSpace(record.Name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		frontier = append(frontier, model.PersonRecord{Name: name, Gender: record.Gender})
	}

	sort.Slice(frontier, func(i, j int) bool {
		return frontier[i].Name < frontier[j].Name
	})

	return frontier
}
