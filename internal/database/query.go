package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Condition is a single WHERE clause in an option-built query.
type Condition struct {
	field string
	value any
	in    bool
}

// Field returns the condition's column name.
func (c Condition) Field() string { return c.field }

// Value returns the condition's bound value.
func (c Condition) Value() any { return c.value }

// In reports whether the condition is an IN clause.
func (c Condition) In() bool { return c.in }

// Order is a single ORDER BY clause.
type Order struct {
	field     string
	ascending bool
}

// Field returns the order's column name.
func (o Order) Field() string { return o.field }

// Ascending reports the sort direction.
func (o Order) Ascending() bool { return o.ascending }

// Query is an accumulated set of query options.
type Query struct {
	conditions []Condition
	orders     []Order
	limit      int
	offset     int
}

// Conditions returns the WHERE clauses.
func (q Query) Conditions() []Condition { return q.conditions }

// Orders returns the ORDER BY clauses.
func (q Query) Orders() []Order { return q.orders }

// LimitValue returns the row limit, 0 meaning unlimited.
func (q Query) LimitValue() int { return q.limit }

// OffsetValue returns the row offset.
func (q Query) OffsetValue() int { return q.offset }

// Option adds a clause to a Query.
type Option func(*Query)

// Build assembles a Query from options.
func Build(options ...Option) Query {
	var q Query
	for _, opt := range options {
		opt(&q)
	}
	return q
}

// Where adds an equality condition.
func Where(field string, value any) Option {
	return func(q *Query) {
		q.conditions = append(q.conditions, Condition{field: field, value: value})
	}
}

// WhereIn adds an IN condition.
func WhereIn(field string, values any) Option {
	return func(q *Query) {
		q.conditions = append(q.conditions, Condition{field: field, value: values, in: true})
	}
}

// OrderBy adds an ORDER BY clause.
func OrderBy(field string, ascending bool) Option {
	return func(q *Query) {
		q.orders = append(q.orders, Order{field: field, ascending: ascending})
	}
}

// Limit caps the number of returned rows.
func Limit(n int) Option {
	return func(q *Query) { q.limit = n }
}

// Offset skips the first n rows.
func Offset(n int) Option {
	return func(q *Query) { q.offset = n }
}

// WithPagination combines Limit and Offset.
func WithPagination(limit, offset int) []Option {
	return []Option{Limit(limit), Offset(offset)}
}

// ApplyOptions builds a Query from the given options and applies it to a
// GORM session.
func ApplyOptions(db *gorm.DB, options ...Option) *gorm.DB {
	q := Build(options...)

	for _, cond := range q.Conditions() {
		if cond.In() {
			db = db.Where(fmt.Sprintf("%s IN ?", cond.Field()), cond.Value())
		} else {
			db = db.Where(fmt.Sprintf("%s = ?", cond.Field()), cond.Value())
		}
	}

	for _, ord := range q.Orders() {
		dir := "ASC"
		if !ord.Ascending() {
			dir = "DESC"
		}
		db = db.Order(fmt.Sprintf("%s %s", ord.Field(), dir))
	}

	if q.LimitValue() > 0 {
		db = db.Limit(q.LimitValue())
	}
	if q.OffsetValue() > 0 {
		db = db.Offset(q.OffsetValue())
	}

	return db
}

// ApplyConditions applies only WHERE conditions (no limit/offset/order),
// for COUNT queries.
func ApplyConditions(db *gorm.DB, options ...Option) *gorm.DB {
	q := Build(options...)

	for _, cond := range q.Conditions() {
		if cond.In() {
			db = db.Where(fmt.Sprintf("%s IN ?", cond.Field()), cond.Value())
		} else {
			db = db.Where(fmt.Sprintf("%s = ?", cond.Field()), cond.Value())
		}
	}

	return db
}
