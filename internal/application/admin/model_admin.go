// Package admin is a declarative model registry in the spirit of a
// changelist admin: each model gets list columns, filters, search and
// ordering, backed by its application service.
package admin

import (
	"github.com/shopadmin/backend/internal/domain/shared"
)

// FilterKind controls how a list filter value is validated
type FilterKind string

const (
	// FilterExact accepts any non-empty value; the repository parses it
	FilterExact FilterKind = "exact"
	// FilterDate accepts one of the changelist date periods
	FilterDate FilterKind = "date"
	// FilterChoice accepts one of the filter's choices
	FilterChoice FilterKind = "choice"
)

// Date periods offered by date filters
const (
	PeriodToday     = "today"
	PeriodPast7Days = "past_7_days"
	PeriodThisMonth = "this_month"
	PeriodThisYear  = "this_year"
)

// DatePeriods are the choices of every date filter
var DatePeriods = []shared.Choice{
	{Value: PeriodToday, Label: "Сегодня"},
	{Value: PeriodPast7Days, Label: "Последние 7 дней"},
	{Value: PeriodThisMonth, Label: "Этот месяц"},
	{Value: PeriodThisYear, Label: "Этот год"},
}

// Column is a list_display entry. Value extracts the cell from a row.
type Column[T any] struct {
	Name  string
	Label string
	Value func(*T) any
}

// Filter is a list_filter entry
type Filter struct {
	Name    string         `json:"name"`
	Label   string         `json:"label"`
	Kind    FilterKind     `json:"kind"`
	Choices []shared.Choice `json:"choices,omitempty"`
}

// Inline describes child rows edited together with the parent
type Inline struct {
	Name              string   `json:"name"`
	VerboseName       string   `json:"verbose_name"`
	VerboseNamePlural string   `json:"verbose_name_plural"`
	Style             string   `json:"style"` // tabular or stacked
	Fields            []string `json:"fields"`
	ReadOnly          []string `json:"readonly_fields,omitempty"`
}

// ModelAdmin configures how one model appears in the admin
type ModelAdmin[T any] struct {
	Name              string
	VerboseName       string
	VerboseNamePlural string
	ListDisplay       []Column[T]
	ListDisplayLinks  []string
	ListFilter        []Filter
	SearchFields      []string
	Ordering          []string
	DateHierarchy     string
	Inlines           []Inline
	ReadOnly          []string
}

// ColumnMeta is the serializable part of a Column
type ColumnMeta struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Meta is the serializable description of a registered model
type Meta struct {
	Name              string       `json:"name"`
	VerboseName       string       `json:"verbose_name"`
	VerboseNamePlural string       `json:"verbose_name_plural"`
	Columns           []ColumnMeta `json:"list_display"`
	ListDisplayLinks  []string     `json:"list_display_links,omitempty"`
	Filters           []Filter     `json:"list_filter"`
	SearchFields      []string     `json:"search_fields"`
	Ordering          []string     `json:"ordering,omitempty"`
	DateHierarchy     string       `json:"date_hierarchy,omitempty"`
	Inlines           []Inline     `json:"inlines,omitempty"`
	ReadOnly          []string     `json:"readonly_fields,omitempty"`
}

func (a *ModelAdmin[T]) meta() Meta {
	cols := make([]ColumnMeta, len(a.ListDisplay))
	for i, c := range a.ListDisplay {
		cols[i] = ColumnMeta{Name: c.Name, Label: c.Label}
	}
	links := a.ListDisplayLinks
	if len(links) == 0 && len(cols) > 0 {
		links = []string{cols[0].Name}
	}
	return Meta{
		Name:              a.Name,
		VerboseName:       a.VerboseName,
		VerboseNamePlural: a.VerboseNamePlural,
		Columns:           cols,
		ListDisplayLinks:  links,
		Filters:           nonNil(a.ListFilter),
		SearchFields:      nonNil(a.SearchFields),
		Ordering:          a.Ordering,
		DateHierarchy:     a.DateHierarchy,
		Inlines:           a.Inlines,
		ReadOnly:          a.ReadOnly,
	}
}

func nonNil[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return s
}
