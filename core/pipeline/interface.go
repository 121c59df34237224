package pipeline

import "github.com/siherrmann/wikigraph/model"

// PersonClassifyFunc reports whether the given link text is recognized
// as a person's name
type PersonClassifyFunc func(text string) (bool, error)

// GenderInferFunc infers the gender of a person from their name.
// Names that cannot be classified map to GenderUnknown, not an error.
type GenderInferFunc func(name string) (model.Gender, error)

// Pipeline combines person classification and gender inference
type Pipeline struct {
	Classifier PersonClassifyFunc
	Detector   GenderInferFunc
}

// NewPipeline creates a new classification pipeline
func NewPipeline(classifier PersonClassifyFunc, detector GenderInferFunc) *Pipeline {
	return &Pipeline{
		Classifier: classifier,
		Detector:   detector,
	}
}

// DefaultPipeline sets up the default NER person classifier and the
// embedded first-name gender detector
func DefaultPipeline() (*Pipeline, error) {
	classifier, err := DefaultPersonClassifier()
	if err != nil {
		return nil, err
	}
	detector, err := DefaultGenderDetector()
	if err != nil {
		return nil, err
	}
	return NewPipeline(classifier, detector), nil
}
