package persistence

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
)

type lookupKind int

const (
	lookupExact lookupKind = iota
	lookupID
	lookupBool
	lookupDate
	lookupInt
)

// Date filter periods accepted by date lookups
const (
	PeriodToday     = "today"
	PeriodPast7Days = "past_7_days"
	PeriodThisMonth = "this_month"
	PeriodThisYear  = "this_year"
)

// lookup maps an admin lookup name such as "user__username" to a qualified
// column and the join it needs
type lookup struct {
	column string
	join   string
	kind   lookupKind
}

// changelistQuery translates shared.Filter into SQL for one table
type changelistQuery struct {
	table        string
	search       map[string]lookup
	filters      map[string]lookup
	sort         map[string]string
	defaultOrder string
}

// where applies search and filters. Unknown lookup names are validation errors.
// Callers that read rows select table.* themselves so joined columns never leak.
func (q *changelistQuery) where(db *gorm.DB, f shared.Filter, now time.Time) (*gorm.DB, error) {
	joins := make([]string, 0, 2)
	addJoin := func(j string) {
		if j == "" {
			return
		}
		for _, existing := range joins {
			if existing == j {
				return
			}
		}
		joins = append(joins, j)
	}

	if terms := strings.Fields(f.Search); len(terms) > 0 {
		fields := f.SearchFields
		if len(fields) == 0 {
			return nil, shared.NewValidationError("Search is not enabled for this model")
		}
		cols := make([]string, 0, len(fields))
		for _, name := range fields {
			l, ok := q.search[name]
			if !ok {
				return nil, shared.NewValidationError(fmt.Sprintf("Cannot search by %q", name))
			}
			addJoin(l.join)
			cols = append(cols, l.column)
		}
		// every term must match at least one field
		for _, term := range terms {
			pattern := "%" + strings.ToLower(term) + "%"
			conds := make([]string, len(cols))
			args := make([]any, len(cols))
			for i, c := range cols {
				conds[i] = "LOWER(" + c + ") LIKE ?"
				args[i] = pattern
			}
			db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
		}
	}

	for _, name := range slices.Sorted(maps.Keys(f.Filters)) {
		value := f.Filters[name]
		l, ok := q.filters[name]
		if !ok {
			return nil, shared.NewValidationError(fmt.Sprintf("Unknown filter %q", name))
		}
		cond, args, err := l.condition(name, value, now)
		if err != nil {
			return nil, err
		}
		addJoin(l.join)
		db = db.Where(cond, args...)
	}

	for _, j := range joins {
		db = db.Joins(j)
	}
	return db, nil
}

// page applies ordering and pagination
func (q *changelistQuery) page(db *gorm.DB, f shared.Filter) (*gorm.DB, error) {
	col, err := ValidateSortField(f.OrderBy, q.sort)
	if err != nil {
		return nil, err
	}
	if col != "" {
		db = db.Order(col + " " + ValidateSortOrder(f.OrderDir)).Order(q.table + ".id " + ValidateSortOrder(f.OrderDir))
	} else if q.defaultOrder != "" {
		db = db.Order(q.defaultOrder)
	}
	if f.Page > 0 && f.PageSize > 0 {
		db = db.Offset(f.Offset()).Limit(f.PageSize)
	}
	return db, nil
}

func (l lookup) condition(name, value string, now time.Time) (string, []any, error) {
	invalid := func() (string, []any, error) {
		return "", nil, shared.NewValidationError(fmt.Sprintf("Invalid value %q for filter %q", value, name))
	}
	switch l.kind {
	case lookupID:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			return invalid()
		}
		return l.column + " = ?", []any{id}, nil
	case lookupInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalid()
		}
		return l.column + " = ?", []any{n}, nil
	case lookupBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid()
		}
		return l.column + " = ?", []any{b}, nil
	case lookupDate:
		from, to, ok := PeriodBounds(value, now)
		if !ok {
			return invalid()
		}
		return l.column + " >= ? AND " + l.column + " < ?", []any{from, to}, nil
	default:
		return l.column + " = ?", []any{value}, nil
	}
}

// PeriodBounds returns the half-open UTC range [from, to) of a date filter period
func PeriodBounds(period string, now time.Time) (time.Time, time.Time, bool) {
	today := shared.DateOf(now.UTC())
	tomorrow := today.AddDate(0, 0, 1)
	switch period {
	case PeriodToday:
		return today, tomorrow, true
	case PeriodPast7Days:
		return today.AddDate(0, 0, -7), tomorrow, true
	case PeriodThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, 0), true
	case PeriodThisYear:
		first := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// notFound maps gorm.ErrRecordNotFound to shared.ErrNotFound
func notFound(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}
