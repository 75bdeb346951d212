// Package listing implements the generic filter/sort/pagination engine used
// by every list endpoint. Callers supply a field allowlist mapping client
// field names to physical columns; the engine never errors on client-supplied
// fields: unknown names are ignored and unparseable values force a
// never-matching predicate instead of failing the request.
package listing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Kind selects the predicate applied for a filter field.
type Kind int

const (
	// Text matches case-insensitive substrings.
	Text Kind = iota
	// Numeric and Bool match by equality.
	Numeric
	Bool
	// ID matches by equality; an unparseable value matches nothing.
	ID
	// DateAfter is col >= value, DateStrictlyAfter is col > value,
	// DateBefore is col <= value. Values are ISO dates; a bad value
	// matches nothing.
	DateAfter
	DateStrictlyAfter
	DateBefore
	// MinNumeric is col >= value, MaxNumeric is col <= value.
	MinNumeric
	MaxNumeric
)

// Field binds a client-visible field name to a physical column. Column may be
// qualified (e.g. "customers.name") when the caller's base query joins.
type Field struct {
	Column string
	Kind   Kind
}

// FieldMap is the per-entity allowlist. Anything not in the map is ignored.
type FieldMap map[string]Field

// SortParam is one sort key; order is "asc" or "desc".
type SortParam struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// Query is the generic, entity-agnostic listing request shape.
type Query struct {
	Page    int            `json:"page"`
	Size    int            `json:"size"`
	Filters map[string]any `json:"filters"`
	Sort    []SortParam    `json:"sort"`
}

// Page is the pagination envelope returned by list operations. Total counts
// the filtered, un-paginated set.
type Page[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

// neverDate is the sentinel compared against when a date filter fails to
// parse: no real row carries it, so the predicate matches nothing.
var neverDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

const isoDate = "2006-01-02"

// ApplyFilters adds WHERE clauses for every known filter. Nil values and
// unknown field names are skipped.
func ApplyFilters(db *gorm.DB, fields FieldMap, filters map[string]any) *gorm.DB {
	for name, value := range filters {
		if value == nil {
			continue
		}
		f, ok := fields[name]
		if !ok {
			continue
		}

		switch f.Kind {
		case Text:
			// CAST keeps the substring match working on non-text columns
			// (dates, numerics) instead of erroring the whole request.
			pattern := "%" + strings.ToLower(fmt.Sprint(value)) + "%"
			db = db.Where("LOWER(CAST("+f.Column+" AS TEXT)) LIKE ?", pattern)
		case Numeric, Bool:
			db = db.Where(f.Column+" = ?", value)
		case ID:
			id, err := toInt64(value)
			if err != nil {
				db = db.Where(f.Column+" = ?", -1)
				continue
			}
			db = db.Where(f.Column+" = ?", id)
		case DateAfter, DateStrictlyAfter, DateBefore:
			d, err := toDate(value)
			if err != nil {
				db = db.Where(f.Column+" = ?", neverDate)
				continue
			}
			switch f.Kind {
			case DateAfter:
				db = db.Where(f.Column+" >= ?", d)
			case DateStrictlyAfter:
				db = db.Where(f.Column+" > ?", d)
			default:
				db = db.Where(f.Column+" <= ?", d)
			}
		case MinNumeric:
			db = db.Where(f.Column+" >= ?", value)
		case MaxNumeric:
			db = db.Where(f.Column+" <= ?", value)
		}
	}
	return db
}

// ApplySort adds ORDER BY clauses for every known sort field, in the order
// supplied. An empty or fully-unknown sort list leaves the store's natural
// retrieval order in place.
func ApplySort(db *gorm.DB, fields FieldMap, sort []SortParam) *gorm.DB {
	for _, s := range sort {
		f, ok := fields[s.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if strings.EqualFold(s.Order, "desc") {
			dir = "DESC"
		}
		db = db.Order(f.Column + " " + dir)
	}
	return db
}

// Find counts the filtered set, then applies sort and pagination and scans
// the page into T. Size is floored to 1, page to 1. newQuery must return a
// fresh base query (model, joins, select) on every call so the count and the
// page select do not share gorm statement state.
func Find[T any](newQuery func() *gorm.DB, fields FieldMap, q Query) (Page[T], error) {
	return find[T](newQuery, fields, q, false)
}

// FindUnbounded behaves like Find except a negative size disables the limit
// entirely; size zero yields an empty page with the correct total.
func FindUnbounded[T any](newQuery func() *gorm.DB, fields FieldMap, q Query) (Page[T], error) {
	return find[T](newQuery, fields, q, true)
}

func find[T any](newQuery func() *gorm.DB, fields FieldMap, q Query, unbounded bool) (Page[T], error) {
	page := Page[T]{Items: []T{}}

	var total int64
	if err := ApplyFilters(newQuery(), fields, q.Filters).Count(&total).Error; err != nil {
		return page, err
	}
	page.Total = total

	stmt := ApplySort(ApplyFilters(newQuery(), fields, q.Filters), fields, q.Sort)

	p := q.Page
	if p < 1 {
		p = 1
	}
	size := q.Size
	if unbounded {
		if size >= 0 {
			stmt = stmt.Offset((p - 1) * size).Limit(size)
		}
	} else {
		if size < 1 {
			size = 1
		}
		stmt = stmt.Offset((p - 1) * size).Limit(size)
	}

	if err := stmt.Find(&page.Items).Error; err != nil {
		return page, err
	}
	return page, nil
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return 0, fmt.Errorf("not an integer: %v", value)
	}
}

func toDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return time.Parse(isoDate, strings.TrimSpace(v))
	default:
		return time.Time{}, fmt.Errorf("not a date: %v", value)
	}
}
