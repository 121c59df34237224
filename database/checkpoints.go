package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/wikigraph/checkpoint"
	"github.com/siherrmann/wikigraph/helper"
	"github.com/siherrmann/wikigraph/model"
	wikisql "github.com/siherrmann/wikigraph/sql"
)

// CheckpointsDBHandlerFunctions is the interface for the checkpoints table handler.
// It is a superset of checkpoint.Store.
type CheckpointsDBHandlerFunctions interface {
	CreateTable() error
	Has(entity string) (bool, error)
	Put(entity string, links model.LinkList) error
	Get(entity string) (model.LinkList, error)
	DeleteCheckpoint(entity string) error
}

// CheckpointsDBHandler persists crawl checkpoints in a postgres table.
type CheckpointsDBHandler struct {
	db *helper.Database
}

// Checkpoint represents a row in the checkpoints table.
type Checkpoint struct {
	ID        int            `json:"id"`
	RID       uuid.UUID      `json:"rid"`
	Entity    string         `json:"entity"`
	Links     model.LinkList `json:"links"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewCheckpointsDBHandler creates a new handler and initializes the checkpoints table.
func NewCheckpointsDBHandler(db *helper.Database, force bool) (*CheckpointsDBHandler, error) {
	if db == nil || db.Instance == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	err := wikisql.LoadCheckpointsSql(db.Instance, force)
	if err != nil {
		return nil, helper.NewError("loading checkpoints sql", err)
	}

	handler := &CheckpointsDBHandler{db: db}
	err = handler.CreateTable()
	if err != nil {
		return nil, helper.NewError("creating checkpoints table", err)
	}

	db.Logger.Info("Initialized CheckpointsDBHandler")
	return handler, nil
}

// CreateTable creates the checkpoints table if it does not exist.
func (r *CheckpointsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.db.Instance.ExecContext(ctx, `SELECT init_checkpoints();`)
	if err != nil {
		log.Panicf("could not create checkpoints table: %v", err)
	}
	return nil
}

// Has reports whether a checkpoint exists for the given entity.
func (r *CheckpointsDBHandler) Has(entity string) (bool, error) {
	entity = strings.TrimSpace(entity)

	var exists bool
	err := r.db.Instance.QueryRow(`SELECT * FROM has_checkpoint($1)`, entity).Scan(&exists)
	if err != nil {
		return false, helper.NewError("checking checkpoint existence", err)
	}
	return exists, nil
}

// Put stores the link list for the given entity. If a checkpoint for the
// entity already exists the call is a no-op and the existing row is kept.
func (r *CheckpointsDBHandler) Put(entity string, links model.LinkList) error {
	entity = strings.TrimSpace(entity)
	if len(entity) == 0 {
		return helper.NewError("validating checkpoint entity", fmt.Errorf("entity name is empty"))
	}

	if links == nil {
		links = model.LinkList{}
	}
	linksJson, err := json.Marshal(links)
	if err != nil {
		return helper.NewError("marshalling checkpoint links", err)
	}

	_, err = r.db.Instance.Exec(`SELECT insert_checkpoint($1, $2)`, entity, linksJson)
	if err != nil {
		return helper.NewError("inserting checkpoint", err)
	}
	return nil
}

// Get returns the link list stored for the given entity. If no checkpoint
// exists checkpoint.ErrNotFound is returned.
func (r *CheckpointsDBHandler) Get(entity string) (model.LinkList, error) {
	entity = strings.TrimSpace(entity)

	row := r.db.Instance.QueryRow(`SELECT * FROM select_checkpoint($1)`, entity)

	cp := &Checkpoint{}
	var linksJson []byte
	err := row.Scan(&cp.ID, &cp.RID, &cp.Entity, &linksJson, &cp.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, checkpoint.ErrNotFound
	} else if err != nil {
		return nil, helper.NewError("scanning checkpoint row", err)
	}

	err = json.Unmarshal(linksJson, &cp.Links)
	if err != nil {
		return nil, helper.NewError("unmarshalling checkpoint links", err)
	}
	return cp.Links, nil
}

// DeleteCheckpoint removes the checkpoint for the given entity.
func (r *CheckpointsDBHandler) DeleteCheckpoint(entity string) error {
	entity = strings.TrimSpace(entity)

	_, err := r.db.Instance.Exec(`SELECT delete_checkpoint($1)`, entity)
	if err != nil {
		return helper.NewError("deleting checkpoint", err)
	}
	return nil
}
