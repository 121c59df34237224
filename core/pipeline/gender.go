package pipeline

import (
	"bufio"
	_ "embed"
	"fmt"
	"strings"

	"github.com/siherrmann/wikigraph/model"
)

//go:embed names.csv
var namesCSV string

// DefaultGenderDetector creates a gender detector backed by the embedded
// first-name table. The gender of a full name is looked up by its first
// whitespace-separated field, names without a table entry map to unknown.
func DefaultGenderDetector() (GenderInferFunc, error) {
	ratings, err := loadNameRatings(namesCSV)
	if err != nil {
		return nil, err
	}
	return GenderDetectorFromRatings(ratings), nil
}

// GenderDetectorFromRatings creates a gender detector from a first-name
// rating table. Ratings follow the usual name-corpus vocabulary:
// male, mostly_male, female, mostly_female and andy (androgynous).
func GenderDetectorFromRatings(ratings map[string]string) GenderInferFunc {
	return func(name string) (model.Gender, error) {
		firstName := name
		if parts := strings.Fields(name); len(parts) > 0 {
			firstName = parts[0]
		}

		switch ratings[strings.ToLower(firstName)] {
		case "male", "mostly_male":
			return model.GenderMale, nil
		case "female", "mostly_female":
			return model.GenderFemale, nil
		default:
			return model.GenderUnknown, nil
		}
	}
}

// loadNameRatings parses the embedded name,rating table
func loadNameRatings(data string) (map[string]string, error) {
	ratings := map[string]string{}

	scanner := bufio.NewScanner(strings.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		row := strings.TrimSpace(scanner.Text())
		if row == "" || strings.HasPrefix(row, "#") {
			continue
		}
		name, rating, found := strings.Cut(row, ",")
		if !found {
			return nil, fmt.Errorf("invalid name table row %d: %q", line, row)
		}
		ratings[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(rating)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read name table: %w", err)
	}

	return ratings, nil
}
