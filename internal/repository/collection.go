package repository

import (
	"context"
	"errors"
	"fmt"

	"delit-api/internal/apperror"

	"gorm.io/gorm"
)

// Collection gives uniform document access to one table. T must be a gorm
// model whose primary key column is "id".
type Collection[T any] struct {
	db   *gorm.DB
	name string
}

// NewCollection returns a collection for T. name is used in not-found
// messages ("blog not found").
func NewCollection[T any](db *gorm.DB, name string) *Collection[T] {
	return &Collection[T]{db: db, name: name}
}

// FindAll returns every document, ordered by order when it is not empty
func (c *Collection[T]) FindAll(ctx context.Context, order string) ([]T, error) {
	docs := make([]T, 0)
	query := c.db.WithContext(ctx)
	if order != "" {
		query = query.Order(order)
	}
	if err := query.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	return docs, nil
}

// FindOne retrieves a document by id
func (c *Collection[T]) FindOne(ctx context.Context, id string) (*T, error) {
	return c.FindBy(ctx, "id", id)
}

// FindBy retrieves the first document whose field equals value
func (c *Collection[T]) FindBy(ctx context.Context, field string, value any) (*T, error) {
	var doc T
	err := c.db.WithContext(ctx).Where(map[string]any{field: value}).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(c.name + " not found")
		}
		return nil, fmt.Errorf("find %s: %w", c.name, err)
	}
	return &doc, nil
}

// Insert creates a document. Unique index violations become conflicts.
func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	if err := c.db.WithContext(ctx).Create(doc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict(c.name + " already exists").Wrap(err)
		}
		return fmt.Errorf("insert %s: %w", c.name, err)
	}
	return nil
}

// Update applies a partial update and returns the number of modified rows
func (c *Collection[T]) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	return c.UpdateBy(ctx, "id", id, fields)
}

// UpdateBy applies a partial update to documents whose field equals value
func (c *Collection[T]) UpdateBy(ctx context.Context, field string, value any, fields map[string]any) (int64, error) {
	result := c.db.WithContext(ctx).Model(new(T)).Where(map[string]any{field: value}).Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return 0, apperror.Conflict(c.name + " already exists").Wrap(result.Error)
		}
		return 0, fmt.Errorf("update %s: %w", c.name, result.Error)
	}
	return result.RowsAffected, nil
}

// Delete removes a document by id and returns the number of deleted rows
func (c *Collection[T]) Delete(ctx context.Context, id string) (int64, error) {
	result := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return 0, fmt.Errorf("delete %s: %w", c.name, result.Error)
	}
	return result.RowsAffected, nil
}
