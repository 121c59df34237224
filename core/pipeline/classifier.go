package pipeline

import (
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/siherrmann/wikigraph/helper"
)

// DefaultPersonClassifier creates a person classifier using a NER model.
// Uses distilbert-NER for named entity recognition, a link text counts
// as a person when any PER entity is detected in it.
func DefaultPersonClassifier() (PersonClassifyFunc, error) {
	// Prepare model (download if needed)
	// Using KnightsAnalytics optimized distilbert-NER model
	modelName := "KnightsAnalytics/distilbert-NER"
	modelPath, err := helper.PrepareModel(modelName, "model.onnx")
	if err != nil {
		return nil, err
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	// Create token classification pipeline for NER
	config := hugot.TokenClassificationConfig{
		ModelPath: modelPath,
		Name:      "person-classifier-pipeline",
		Options: []hugot.TokenClassificationOption{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}), // Ignore non-entity tokens
		},
	}
	nerPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create NER pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create NER pipeline: %w", err)
	}

	return func(text string) (bool, error) {
		if strings.TrimSpace(text) == "" {
			return false, nil
		}

		result, err := nerPipeline.RunPipeline([]string{text})
		if err != nil {
			return false, fmt.Errorf("failed to run NER: %w", err)
		}

		if len(result.Entities) == 0 {
			return false, nil
		}

		for _, entity := range result.Entities[0] {
			if isPersonLabel(entity.Entity) {
				return true, nil
			}
		}

		return false, nil
	}, nil
}

// isPersonLabel reports whether a NER label denotes a person after
// removing BIO tagging prefixes (B- for beginning, I- for inside)
func isPersonLabel(label string) bool {
	label = strings.TrimPrefix(label, "B-")
	label = strings.TrimPrefix(label, "I-")
	return label == "PER" || label == "PERSON"
}
