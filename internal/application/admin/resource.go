package admin

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// Pagination limits of the changelist
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Service is the CRUD surface a model's application service exposes
type Service[T any, C any, U any] interface {
	Create(ctx context.Context, req C) (*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, filter shared.Filter) ([]T, int64, error)
	Update(ctx context.Context, id int64, req U) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Identifiable rows expose their primary key
type Identifiable interface {
	GetID() int64
}

// Resource is a registered model with its types erased, for the HTTP layer.
// Inputs passed to Create and Update must come from NewCreateInput and
// NewUpdateInput.
type Resource interface {
	Meta() Meta
	Changelist(ctx context.Context, req ChangelistRequest) (*Changelist, error)
	Get(ctx context.Context, id int64) (any, error)
	NewCreateInput() any
	Create(ctx context.Context, input any) (any, error)
	NewUpdateInput() any
	Update(ctx context.Context, id int64, input any) (any, error)
	Delete(ctx context.Context, id int64) error
}

// ChangelistRequest carries the changelist query parameters.
// Ordering is a field name, prefixed with "-" for descending.
type ChangelistRequest struct {
	Query    string
	Ordering string
	Filters  map[string]string
	Page     int
	PageSize int
}

// Row is one changelist line: the list_display cells keyed by column name
type Row struct {
	ID     int64          `json:"id"`
	Values map[string]any `json:"values"`
}

// Changelist is a page of rows
type Changelist struct {
	Columns []ColumnMeta `json:"columns"`
	shared.Paginated[Row]
}

type resource[T Identifiable, C any, U any] struct {
	admin   ModelAdmin[T]
	svc     Service[T, C, U]
	filters map[string]Filter
}

// NewResource binds a model configuration to its service
func NewResource[T Identifiable, C any, U any](a ModelAdmin[T], svc Service[T, C, U]) Resource {
	filters := make(map[string]Filter, len(a.ListFilter))
	for _, f := range a.ListFilter {
		if f.Kind == FilterDate && len(f.Choices) == 0 {
			f.Choices = DatePeriods
		}
		filters[f.Name] = f
	}
	listFilter := make([]Filter, len(a.ListFilter))
	for i, f := range a.ListFilter {
		listFilter[i] = filters[f.Name]
	}
	a.ListFilter = listFilter
	return &resource[T, C, U]{admin: a, svc: svc, filters: filters}
}

func (r *resource[T, C, U]) Meta() Meta {
	return r.admin.meta()
}

func (r *resource[T, C, U]) Changelist(ctx context.Context, req ChangelistRequest) (*Changelist, error) {
	filter, err := r.filter(req)
	if err != nil {
		return nil, err
	}
	items, total, err := r.svc.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(items))
	for i := range items {
		values := make(map[string]any, len(r.admin.ListDisplay))
		for _, c := range r.admin.ListDisplay {
			values[c.Name] = c.Value(&items[i])
		}
		rows[i] = Row{ID: items[i].GetID(), Values: values}
	}

	return &Changelist{
		Columns:   r.admin.meta().Columns,
		Paginated: shared.NewPaginated(rows, total, filter.Page, filter.PageSize),
	}, nil
}

// filter validates the request against the model's configuration
func (r *resource[T, C, U]) filter(req ChangelistRequest) (shared.Filter, error) {
	f := shared.DefaultFilter()
	f.PageSize = DefaultPageSize
	if req.Page > 0 {
		f.Page = req.Page
	}
	if req.PageSize > 0 {
		f.PageSize = min(req.PageSize, MaxPageSize)
	}

	if q := strings.TrimSpace(req.Query); q != "" {
		if len(r.admin.SearchFields) == 0 {
			return f, shared.NewValidationError(fmt.Sprintf("Search is not enabled for %s", r.admin.Name))
		}
		f.Search = q
		f.SearchFields = r.admin.SearchFields
	}

	for name, value := range req.Filters {
		if value == "" {
			continue
		}
		lf, ok := r.filters[name]
		if !ok {
			return f, shared.NewValidationError(fmt.Sprintf("Unknown filter %q for %s", name, r.admin.Name))
		}
		if lf.Kind != FilterExact && !hasChoice(lf.Choices, value) {
			return f, shared.NewValidationError(fmt.Sprintf("Invalid value %q for filter %q", value, name))
		}
		f.Filters[name] = value
	}

	ordering := strings.TrimSpace(req.Ordering)
	if ordering == "" && len(r.admin.Ordering) > 0 {
		ordering = r.admin.Ordering[0]
	}
	if ordering != "" {
		f.OrderDir = "asc"
		if field, ok := strings.CutPrefix(ordering, "-"); ok {
			ordering = field
			f.OrderDir = "desc"
		}
		if ordering == "" {
			return f, shared.NewValidationError("Empty ordering field")
		}
		f.OrderBy = ordering
	}
	return f, nil
}

func hasChoice(choices []shared.Choice, value string) bool {
	return slices.ContainsFunc(choices, func(c shared.Choice) bool { return c.Value == value })
}

func (r *resource[T, C, U]) Get(ctx context.Context, id int64) (any, error) {
	obj, err := r.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (r *resource[T, C, U]) NewCreateInput() any {
	return new(C)
}

func (r *resource[T, C, U]) Create(ctx context.Context, input any) (any, error) {
	req, ok := input.(*C)
	if !ok {
		return nil, shared.ErrInvalidInput
	}
	obj, err := r.svc.Create(ctx, *req)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (r *resource[T, C, U]) NewUpdateInput() any {
	return new(U)
}

func (r *resource[T, C, U]) Update(ctx context.Context, id int64, input any) (any, error) {
	req, ok := input.(*U)
	if !ok {
		return nil, shared.ErrInvalidInput
	}
	obj, err := r.svc.Update(ctx, id, *req)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (r *resource[T, C, U]) Delete(ctx context.Context, id int64) error {
	return r.svc.Delete(ctx, id)
}
