package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teamfeedback-backend/internal/db/query"
	"teamfeedback-backend/internal/model"
)

// ErrNotFound is returned when an id does not resolve to a row.
var ErrNotFound = errors.New("record not found")

// ErrStale is returned by UpdateIf when the row exists but no longer holds
// the expected values.
var ErrStale = errors.New("record changed concurrently")

// ValidID reports whether id can name a row. Every primary key is a uuid
// column, and Postgres rejects malformed uuids instead of matching nothing.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// StorageError wraps a failure reported by the database. Its message is the
// raw driver message so callers can surface it unchanged.
type StorageError struct {
	Op    string
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Gateway is the only component that talks to storage.
type Gateway interface {
	GetByID(ctx context.Context, table, id string, dest interface{}, preloads ...query.Preload) error
	ListBy(ctx context.Context, table string, filter *query.Filter, dest interface{}) error
	Insert(ctx context.Context, table string, record interface{}) error
	Update(ctx context.Context, table, id string, patch map[string]interface{}, dest interface{}) error
	UpdateIf(ctx context.Context, table, id string, expect, patch map[string]interface{}, dest interface{}) error
	Delete(ctx context.Context, table, id string) error
}

var knownTables = map[string]bool{
	model.TableEvents:            true,
	model.TableTemplates:         true,
	model.TableTemplateSections:  true,
	model.TableTemplateQuestions: true,
	model.TableForms:             true,
	model.TableUsers:             true,
	model.TableResponses:         true,
	model.TableQuestionResponses: true,
}

// QueryExecutor implements Gateway over gorm.
type QueryExecutor struct {
	DB *gorm.DB
}

// NewQueryExecutor creates a new instance of QueryExecutor.
func NewQueryExecutor(db *gorm.DB) *QueryExecutor {
	return &QueryExecutor{DB: db}
}

var _ Gateway = (*QueryExecutor)(nil)

func (qe *QueryExecutor) table(ctx context.Context, op, table string) (*gorm.DB, error) {
	if !knownTables[table] {
		return nil, &StorageError{Op: op, Table: table, Err: fmt.Errorf("unknown table %q", table)}
	}
	return qe.DB.WithContext(ctx).Table(table), nil
}

func wrap(op, table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return &StorageError{Op: op, Table: table, Err: err}
}

// GetByID loads the row with the given id into dest.
func (qe *QueryExecutor) GetByID(ctx context.Context, table, id string, dest interface{}, preloads ...query.Preload) error {
	tx, err := qe.table(ctx, "get", table)
	if err != nil {
		return err
	}
	if !ValidID(id) {
		return ErrNotFound
	}
	tx = query.ApplyPreloads(tx, preloads)
	return wrap("get", table, tx.Where("id = ?", id).Take(dest).Error)
}

// ListBy loads every row matching the filter into dest, which must be a
// pointer to a slice.
func (qe *QueryExecutor) ListBy(ctx context.Context, table string, filter *query.Filter, dest interface{}) error {
	tx, err := qe.table(ctx, "list", table)
	if err != nil {
		return err
	}
	tx, err = filter.Apply(tx)
	if err != nil {
		return &StorageError{Op: "list", Table: table, Err: err}
	}
	return wrap("list", table, tx.Find(dest).Error)
}

// Insert creates a single row. Associations are never written implicitly;
// child rows go through their own Insert call.
func (qe *QueryExecutor) Insert(ctx context.Context, table string, record interface{}) error {
	tx, err := qe.table(ctx, "insert", table)
	if err != nil {
		return err
	}
	return wrap("insert", table, tx.Omit(clause.Associations).Create(record).Error)
}

// Update applies patch to the row with the given id and reloads it into dest
// when dest is not nil.
func (qe *QueryExecutor) Update(ctx context.Context, table, id string, patch map[string]interface{}, dest interface{}) error {
	return qe.UpdateIf(ctx, table, id, nil, patch, dest)
}

// UpdateIf applies patch only while every column in expect still holds the
// expected value. A row that exists but fails the check yields ErrStale.
func (qe *QueryExecutor) UpdateIf(ctx context.Context, table, id string, expect, patch map[string]interface{}, dest interface{}) error {
	tx, err := qe.table(ctx, "update", table)
	if err != nil {
		return err
	}
	if !ValidID(id) {
		return ErrNotFound
	}
	tx = tx.Where("id = ?", id)
	if len(expect) > 0 {
		tx = tx.Where(expect)
	}
	result := tx.Updates(patch)
	if result.Error != nil {
		return wrap("update", table, result.Error)
	}
	if result.RowsAffected == 0 {
		if len(expect) == 0 {
			return ErrNotFound
		}
		var n int64
		if err := qe.DB.WithContext(ctx).Table(table).Where("id = ?", id).Count(&n).Error; err != nil {
			return wrap("update", table, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrStale
	}
	if dest == nil {
		return nil
	}
	return qe.GetByID(ctx, table, id, dest)
}

// Delete removes the row with the given id.
func (qe *QueryExecutor) Delete(ctx context.Context, table, id string) error {
	if !knownTables[table] {
		return &StorageError{Op: "delete", Table: table, Err: fmt.Errorf("unknown table %q", table)}
	}
	if !ValidID(id) {
		return ErrNotFound
	}
	result := qe.DB.WithContext(ctx).Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if result.Error != nil {
		return wrap("delete", table, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
