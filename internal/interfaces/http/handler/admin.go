package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/backend/internal/application/admin"
	orderapp "github.com/shopadmin/backend/internal/application/order"
)

// Reserved changelist query parameters; every other parameter is a filter
const (
	queryParam    = "q"
	orderingParam = "o"
	pageParam     = "page"
	pageSizeParam = "page_size"
)

// OrderItemsSaver is the order inline save path with price backfill
type OrderItemsSaver interface {
	SaveItems(ctx context.Context, orderID int64, inputs []orderapp.OrderItemInput) (*orderapp.OrderResponse, error)
}

// AdminHandler serves every model registered on the admin site
type AdminHandler struct {
	BaseHandler
	site   *admin.Site
	orders OrderItemsSaver
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(site *admin.Site, orders OrderItemsSaver) *AdminHandler {
	return &AdminHandler{site: site, orders: orders}
}

// ChangelistResponse is one page of a model's changelist
type ChangelistResponse struct {
	Model admin.Meta  `json:"model"`
	Rows  []admin.Row `json:"rows"`
}

// Index godoc
// @ID           adminIndex
// @Summary      List admin models
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[[]admin.IndexEntry]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/ [get]
func (h *AdminHandler) Index(c *gin.Context) {
	h.Success(c, h.site.Index())
}

// Changelist godoc
// @ID           adminChangelist
// @Summary      Changelist of a model
// @Description  Search with q, order with o (prefix - for descending); any other query parameter filters on a list_filter field
// @Tags         admin
// @Produce      json
// @Param        model     path  string true  "Model name" example(order)
// @Param        q         query string false "Search over search_fields"
// @Param        o         query string false "Ordering field" example(-created_at)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[ChangelistResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{model}/ [get]
func (h *AdminHandler) Changelist(c *gin.Context) {
	r, ok := h.resource(c)
	if !ok {
		return
	}

	req := admin.ChangelistRequest{
		Query:    c.Query(queryParam),
		Ordering: c.Query(orderingParam),
		Filters:  make(map[string]string),
	}
	var err error
	if req.Page, err = intQuery(c, pageParam); err != nil {
		h.BadRequest(c, "page must be a positive integer")
		return
	}
	if req.PageSize, err = intQuery(c, pageSizeParam); err != nil {
		h.BadRequest(c, "page_size must be a positive integer")
		return
	}
	for key, values := range c.Request.URL.Query() {
		switch key {
		case queryParam, orderingParam, pageParam, pageSizeParam:
			continue
		}
		if len(values) > 0 {
			req.Filters[key] = values[0]
		}
	}

	page, err := r.Changelist(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, ChangelistResponse{Model: r.Meta(), Rows: page.Items}, page.Total, page.Page, page.PageSize)
}

// Detail godoc
// @ID           adminDetail
// @Summary      Get one object
// @Tags         admin
// @Produce      json
// @Param        model path string true "Model name"
// @Param        id    path int    true "Object ID"
// @Success      200 {object} APIResponse[any]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{model}/{id} [get]
func (h *AdminHandler) Detail(c *gin.Context) {
	r, id, ok := h.resourceAndID(c)
	if !ok {
		return
	}
	obj, err := r.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, obj)
}

// Create godoc
// @ID           adminCreate
// @Summary      Create an object
// @Description  The body is the model's create payload, validated before the service runs
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        model path string true "Model name"
// @Success      201 {object} APIResponse[any]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{model}/ [post]
func (h *AdminHandler) Create(c *gin.Context) {
	r, ok := h.resource(c)
	if !ok {
		return
	}
	input := r.NewCreateInput()
	if err := c.ShouldBindJSON(input); err != nil {
		h.BindError(c, err)
		return
	}
	obj, err := r.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, obj)
}

// Update godoc
// @ID           adminUpdate
// @Summary      Update an object
// @Description  Only the fields present in the body change
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        model path string true "Model name"
// @Param        id    path int    true "Object ID"
// @Success      200 {object} APIResponse[any]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{model}/{id} [put]
func (h *AdminHandler) Update(c *gin.Context) {
	r, id, ok := h.resourceAndID(c)
	if !ok {
		return
	}
	input := r.NewUpdateInput()
	if err := c.ShouldBindJSON(input); err != nil {
		h.BindError(c, err)
		return
	}
	obj, err := r.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, obj)
}

// Delete godoc
// @ID           adminDelete
// @Summary      Delete an object
// @Tags         admin
// @Param        model path string true "Model name"
// @Param        id    path int    true "Object ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{model}/{id} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	r, id, ok := h.resourceAndID(c)
	if !ok {
		return
	}
	if err := r.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SaveOrderItems godoc
// @ID           adminSaveOrderItems
// @Summary      Save the items inline of an order
// @Description  Items without a price take the product's current price. Items missing from the body are deleted.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path int                       true "Order ID"
// @Param        request body orderapp.SaveItemsRequest true "Order items"
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/order/{id}/items [put]
func (h *AdminHandler) SaveOrderItems(c *gin.Context) {
	if c.Param("model") != "order" {
		h.NotFound(c, "Inline items exist only on orders")
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid ID")
		return
	}
	var req orderapp.SaveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.orders.SaveItems(c.Request.Context(), id, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *AdminHandler) resource(c *gin.Context) (admin.Resource, bool) {
	r, err := h.site.Lookup(c.Param("model"))
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	return r, true
}

func (h *AdminHandler) resourceAndID(c *gin.Context) (admin.Resource, int64, bool) {
	r, ok := h.resource(c)
	if !ok {
		return nil, 0, false
	}
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid ID")
		return nil, 0, false
	}
	return r, id, true
}

// intQuery reads an optional positive integer query parameter, 0 when absent
func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
