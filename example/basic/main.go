package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/siherrmann/wikigraph"
	"github.com/siherrmann/wikigraph/model"
)

func main() {
	topic := flag.String("topic", "Artificial intelligence", "seed topic to crawl")
	workers := flag.Int("workers", 1, "number of concurrent page fetches")
	flag.Parse()

	config := model.DefaultCrawlConfig()
	config.Workers = *workers

	w, err := wikigraph.NewWikigraph(config)
	if err != nil {
		log.Fatalf("Failed to create wikigraph: %v", err)
	}

	// Set up the default pipeline (NER person classification + gender inference)
	if err := w.UseDefaultPipeline(); err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	fmt.Printf("Crawling %q...\n", *topic)
	path, err := w.Run(context.Background(), *topic)
	if err != nil {
		log.Fatalf("Failed to crawl: %v", err)
	}

	fmt.Printf("Graph exported to %s\n", path)
	fmt.Printf("Checkpoints written to %s, rerun to resume or extend.\n", config.OutputDir)
}
