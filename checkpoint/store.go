// Package checkpoint persists per-entity link lists so that an
// interrupted crawl can be resumed without refetching finished entities.
package checkpoint

import (
	"errors"

	"github.com/siherrmann/wikigraph/model"
)

// ErrNotFound is returned by Get for an entity without a checkpoint
var ErrNotFound = errors.New("no checkpoint for entity")

// Store is the durable per-entity checkpoint contract. A checkpoint is
// either fully absent or fully present, Put for an already checkpointed
// entity is a no-op.
type Store interface {
	Has(entity string) (bool, error)
	Put(entity string, links model.LinkList) error
	Get(entity string) (model.LinkList, error)
}
