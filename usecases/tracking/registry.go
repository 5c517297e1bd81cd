package tracking

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/jinzhu/inflection"

	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/repositories"
)

// SnapshotApplier persists a reconstructed attribute snapshot back onto the
// tracked entity, inside the transaction that also records the revert change.
// The host application registers one per subject type.
type SnapshotApplier interface {
	ApplySnapshot(ctx context.Context, tx repositories.Transaction,
		subjectId string, snapshot models.Attributes) error
}

// EntityConfig opts one entity type into change tracking.
type EntityConfig struct {
	// SubjectType defaults to the singular form of Table.
	SubjectType string
	Table       string
	Filter      models.FieldFilter
	Applier     SnapshotApplier
}

// Registry holds the set of tracked entity types. Untracked entities are
// ignored by the subscriber.
type Registry struct {
	mu      sync.RWMutex
	byType  map[string]EntityConfig
	byTable map[string]EntityConfig
}

func NewRegistry() *Registry {
	return &Registry{
		byType:  make(map[string]EntityConfig),
		byTable: make(map[string]EntityConfig),
	}
}

func (r *Registry) Register(config EntityConfig) error {
	if config.Table == "" && config.SubjectType == "" {
		return errors.Wrap(models.BadParameterError, "entity config needs a table or a subject type")
	}
	if config.SubjectType == "" {
		config.SubjectType = inflection.Singular(config.Table)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byType[config.SubjectType]; ok {
		return errors.Wrapf(models.ConflictError, "subject type %q is already registered", config.SubjectType)
	}
	r.byType[config.SubjectType] = config
	if config.Table != "" {
		r.byTable[config.Table] = config
	}
	return nil
}

func (r *Registry) ConfigFor(subjectType string) (EntityConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	config, ok := r.byType[subjectType]
	return config, ok
}

func (r *Registry) ConfigForTable(table string) (EntityConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	config, ok := r.byTable[table]
	return config, ok
}
