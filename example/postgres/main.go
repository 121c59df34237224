package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/wikigraph"
	"github.com/siherrmann/wikigraph/helper"
	"github.com/siherrmann/wikigraph/model"
)

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	config := model.DefaultCrawlConfig()

	w, err := wikigraph.NewWikigraphWithDatabase(config, dbConfig)
	if err != nil {
		log.Fatalf("Failed to create wikigraph: %v", err)
	}
	defer w.Close()

	if err := w.UseDefaultPipeline(); err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	topic := "Alan Turing"
	fmt.Printf("Crawling %q with postgres checkpoints...\n", topic)

	result, err := w.Crawl(context.Background(), topic)
	if err != nil {
		log.Fatalf("Failed to crawl: %v", err)
	}
	fmt.Printf("Frontier contains %d persons\n", len(result.Frontier))

	graph, err := w.BuildGraph(result)
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}
	fmt.Printf("Graph has %d nodes and %d edges\n", graph.NodeCount(), graph.EdgeCount())

	path := w.GraphMLPath(topic)
	if err := w.ExportGraphML(graph, path); err != nil {
		log.Fatalf("Failed to export graph: %v", err)
	}

	fmt.Printf("Graph exported to %s\n", path)
}
