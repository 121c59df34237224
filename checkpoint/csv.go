package checkpoint

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/siherrmann/wikigraph/helper"
	"github.com/siherrmann/wikigraph/model"
)

// csvHeader is the first row of every checkpoint file
var csvHeader = []string{"Name", "Gender"}

// CSVStore persists one CSV file per entity inside a directory. The
// presence of the file is the checkpoint, so files are written to a
// temporary name first and renamed into place. A crash mid-write never
// leaves a readable but incomplete checkpoint behind.
type CSVStore struct {
	dir string
}

// NewCSVStore creates the directory if needed and returns the store
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, helper.NewError("create checkpoint directory", err)
	}
	return &CSVStore{dir: dir}, nil
}

// Path returns the checkpoint file path for an entity. Spaces in the
// entity name are replaced with underscores.
func (s *CSVStore) Path(entity string) string {
	name := strings.ReplaceAll(strings.TrimSpace(entity), " ", "_")
	return filepath.Join(s.dir, name+".csv")
}

// Has reports whether a checkpoint file exists for the entity
func (s *CSVStore) Has(entity string) (bool, error) {
	_, err := os.Stat(s.Path(entity))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, helper.NewError("stat checkpoint file", err)
}

// Put writes the link list for the entity. An empty list still produces
// a file containing only the header. An existing checkpoint is left
// untouched.
func (s *CSVStore) Put(entity string, links model.LinkList) error {
	has, err := s.Has(entity)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	tmp, err := os.CreateTemp(s.dir, ".checkpoint-*.tmp")
	if err != nil {
		return helper.NewError("create temporary checkpoint file", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(csvHeader); err != nil {
		tmp.Close()
		return helper.NewError("write checkpoint header", err)
	}
	for _, record := range links {
		if err := writer.Write([]string{record.Name, string(record.Gender)}); err != nil {
			tmp.Close()
			return helper.NewError("write checkpoint row", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return helper.NewError("flush checkpoint file", err)
	}
	if err := tmp.Close(); err != nil {
		return helper.NewError("close checkpoint file", err)
	}

	if err := os.Rename(tmp.Name(), s.Path(entity)); err != nil {
		return helper.NewError("rename checkpoint file", err)
	}

	return nil
}

// Get reads the link list for the entity, or returns ErrNotFound
func (s *CSVStore) Get(entity string) (model.LinkList, error) {
	file, err := os.Open(s.Path(entity))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, helper.NewError("open checkpoint file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	// Skip the header row
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return model.LinkList{}, nil
		}
		return nil, helper.NewError("read checkpoint header", err)
	}

	links := model.LinkList{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, helper.NewError("read checkpoint row", err)
		}
		if len(row) == 0 {
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		gender := model.GenderUnknown
		if len(row) > 1 {
			gender = model.ParseGender(row[1])
		}
		links = append(links, model.PersonRecord{Name: name, Gender: gender})
	}

	return links, nil
}
