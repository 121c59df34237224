package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/siherrmann/wikigraph/helper"
	"github.com/siherrmann/wikigraph/model"
)

// PageSource provides page existence checks and the ordered, already
// deduplicated outgoing link titles of a page
type PageSource interface {
	Exists(ctx context.Context, title string) (bool, error)
	FetchLinks(ctx context.Context, title string) ([]string, error)
}

// Processor turns one entity's page into its link list: fetch the
// outgoing links, keep the persons, annotate them with a gender.
type Processor struct {
	source   PageSource
	pipeline *Pipeline
	log      *slog.Logger
}

// NewProcessor creates a new entity processor
func NewProcessor(source PageSource, pipeline *Pipeline, logger *slog.Logger) (*Processor, error) {
	if source == nil {
		return nil, helper.NewError("page source validation", fmt.Errorf("page source is nil"))
	}
	if pipeline == nil || pipeline.Classifier == nil || pipeline.Detector == nil {
		return nil, helper.NewError("pipeline validation", fmt.Errorf("pipeline with classifier and detector must be set"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		source:   source,
		pipeline: pipeline,
		log:      logger,
	}, nil
}

// Process fetches the links of the entity's page and returns the persons
// among them in fetch order. A missing page is not an error, it yields an
// empty link list.
func (p *Processor) Process(ctx context.Context, entity string) (model.LinkList, error) {
	start := time.Now()
	entity = strings.TrimSpace(entity)

	exists, err := p.source.Exists(ctx, entity)
	if err != nil {
		return nil, helper.NewError("check page existence", err)
	}
	if !exists {
		p.log.Warn("Page does not exist", slog.String("entity", entity))
		return model.LinkList{}, nil
	}

	titles, err := p.source.FetchLinks(ctx, entity)
	if err != nil {
		return nil, helper.NewError("fetch links", err)
	}

	links := model.LinkList{}
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}

		isPerson, err := p.pipeline.Classifier(title)
		if err != nil {
			return nil, helper.NewError("classify link", err)
		}
		if !isPerson {
			continue
		}

		gender, err := p.pipeline.Detector(title)
		if err != nil {
			return nil, helper.NewError("infer gender", err)
		}
		links = append(links, model.NewPersonRecord(title, gender))
	}

	p.log.Info("Processed page",
		slog.String("entity", entity),
		slog.Int("links", len(titles)),
		slog.Int("persons", len(links)),
		slog.Duration("took", time.Since(start)),
	)

	return links, nil
}
