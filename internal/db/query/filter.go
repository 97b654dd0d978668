package query

import (
	"fmt"
	"regexp"

	"gorm.io/gorm"
)

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Preload names a relation to join in, optionally restricted to columns.
type Preload struct {
	Relation string
	Columns  []string
}

type condition struct {
	column string
	value  interface{}
}

// Filter describes the where/order/preload part of a list query.
type Filter struct {
	conditions []condition
	orderBy    string
	desc       bool
	limit      int
	preloads   []Preload
}

func NewFilter() *Filter {
	return &Filter{}
}

// Eq adds an equality condition. Nil values are ignored so optional query
// parameters can be passed straight through.
func (f *Filter) Eq(column string, value interface{}) *Filter {
	if value == nil {
		return f
	}
	if s, ok := value.(string); ok && s == "" {
		return f
	}
	f.conditions = append(f.conditions, condition{column: column, value: value})
	return f
}

func (f *Filter) OrderBy(column string, desc bool) *Filter {
	f.orderBy = column
	f.desc = desc
	return f
}

// NewestFirst orders by created_at descending.
func (f *Filter) NewestFirst() *Filter {
	return f.OrderBy("created_at", true)
}

func (f *Filter) Limit(n int) *Filter {
	f.limit = n
	return f
}

func (f *Filter) Preload(relation string, columns ...string) *Filter {
	f.preloads = append(f.preloads, Preload{Relation: relation, Columns: columns})
	return f
}

// Preloads returns the requested relations.
func (f *Filter) Preloads() []Preload {
	if f == nil {
		return nil
	}
	return f.preloads
}

// Apply builds the filter onto a gorm statement. Column names are checked
// against a strict identifier pattern because they are interpolated.
func (f *Filter) Apply(tx *gorm.DB) (*gorm.DB, error) {
	if f == nil {
		return tx, nil
	}
	for _, c := range f.conditions {
		if !identifier.MatchString(c.column) {
			return nil, fmt.Errorf("invalid filter column %q", c.column)
		}
		tx = tx.Where(fmt.Sprintf("%s = ?", c.column), c.value)
	}
	if f.orderBy != "" {
		if !identifier.MatchString(f.orderBy) {
			return nil, fmt.Errorf("invalid order column %q", f.orderBy)
		}
		dir := "asc"
		if f.desc {
			dir = "desc"
		}
		tx = tx.Order(fmt.Sprintf("%s %s", f.orderBy, dir))
	}
	if f.limit > 0 {
		tx = tx.Limit(f.limit)
	}
	return ApplyPreloads(tx, f.preloads), nil
}

// ApplyPreloads adds preload clauses for the given relations.
func ApplyPreloads(tx *gorm.DB, preloads []Preload) *gorm.DB {
	for _, p := range preloads {
		if len(p.Columns) == 0 {
			tx = tx.Preload(p.Relation)
			continue
		}
		cols := p.Columns
		tx = tx.Preload(p.Relation, func(db *gorm.DB) *gorm.DB {
			return db.Select(cols)
		})
	}
	return tx
}
