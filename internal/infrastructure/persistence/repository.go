package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrReferenceNotFound is returned when a foreign key points at a missing row
var ErrReferenceNotFound = shared.NewValidationError("Referenced record does not exist")

// gormRepository implements shared.Repository[T] for one table. Concrete
// repositories embed it and add their own queries.
type gormRepository[T any] struct {
	db    *gorm.DB
	query *changelistQuery
	// list and detail add preloads or computed columns to reads
	list     func(*gorm.DB) *gorm.DB
	detail   func(*gorm.DB) *gorm.DB
	conflict error
	now      func() time.Time
}

func newGormRepository[T any](db *gorm.DB, q *changelistQuery) gormRepository[T] {
	noop := func(tx *gorm.DB) *gorm.DB { return tx }
	return gormRepository[T]{
		db:       db,
		query:    q,
		list:     noop,
		detail:   noop,
		conflict: shared.ErrAlreadyExists,
		now:      time.Now,
	}
}

// FindByID finds an entity by its ID
func (r *gormRepository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	query := r.detail(r.db.WithContext(ctx).Model(new(T)).Select(r.query.table + ".*"))
	if err := query.Where(r.query.table+".id = ?", id).Take(&entity).Error; err != nil {
		return nil, notFound(err)
	}
	return &entity, nil
}

// FindAll finds the page of entities matching the filter
func (r *gormRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	query, err := r.query.where(r.db.WithContext(ctx).Model(new(T)), filter, r.now())
	if err != nil {
		return nil, err
	}
	if query, err = r.query.page(query, filter); err != nil {
		return nil, err
	}
	var entities []T
	if err := r.list(query.Select(r.query.table + ".*")).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Count counts the entities matching the filter
func (r *gormRepository[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	query, err := r.query.where(r.db.WithContext(ctx).Model(new(T)), filter, r.now())
	if err != nil {
		return 0, err
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Save creates or updates the entity without touching its associations
func (r *gormRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error)
}

// Delete deletes an entity by ID
func (r *gormRepository[T]) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return r.translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *gormRepository[T]) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return r.conflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrReferenceNotFound
	}
	return err
}
