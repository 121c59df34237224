// Package graph assembles the directed connection graph from the
// checkpointed link lists of a finished crawl.
package graph

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/siherrmann/wikigraph/checkpoint"
	"github.com/siherrmann/wikigraph/helper"
	"github.com/siherrmann/wikigraph/model"
)

// Builder builds the graph from a crawl result. It only reads from the
// checkpoint store, it runs after all frontier entities have finished
// processing.
type Builder struct {
	store checkpoint.Store
	log   *slog.Logger
}

// NewBuilder creates a new graph builder
func NewBuilder(store checkpoint.Store, logger *slog.Logger) (*Builder, error) {
	if store == nil {
		return nil, helper.NewError("store validation", fmt.Errorf("checkpoint store is nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Builder{
		store: store,
		log:   logger,
	}, nil
}

// Build assembles the directed graph for a topic and its frontier.
//
// Every frontier person gets a node with its recorded gender and an edge
// from the topic. A link between two frontier persons becomes a pair of
// edges in both directions, both are primary subjects regardless of which
// page happened to name the other first. A link to a person outside the
// frontier stays one-directional, the target is a leaf reference.
func (b *Builder) Build(topic string, frontier []model.PersonRecord) (*model.Graph, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, helper.NewError("topic validation", fmt.Errorf("topic is empty"))
	}

	g := model.NewGraph()
	g.AddTopic(topic)

	inFrontier := map[string]struct{}{}
	for _, person := range frontier {
		name := strings.TrimSpace(person.Name)
		if name == "" {
			continue
		}
		inFrontier[name] = struct{}{}
		g.AddPerson(name, person.Gender)
		g.AddEdge(topic, name)
	}

	for _, person := range frontier {
		links, err := b.store.Get(person.Name)
		if errors.Is(err, checkpoint.ErrNotFound) {
			// No checkpoint for this person, nothing to merge
			continue
		}
		if err != nil {
			return nil, helper.NewError("load checkpoint", err)
		}

		for _, linked := range links {
			name := strings.TrimSpace(linked.Name)
			if name == "" {
				continue
			}

			if _, ok := inFrontier[name]; ok {
				g.AddEdge(person.Name, name)
				g.AddEdge(name, person.Name)
			} else {
				g.AddPerson(name, linked.Gender)
				g.AddEdge(person.Name, name)
			}
		}
	}

	b.log.Info("Built graph",
		slog.String("topic", topic),
		slog.Int("nodes", g.NodeCount()),
		slog.Int("edges", g.EdgeCount()),
	)

	return g, nil
}
