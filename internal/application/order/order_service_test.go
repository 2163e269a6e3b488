package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/order"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type orderTestEnv struct {
	svc        *OrderService
	orders     *MockOrderRepository
	products   *MockProductRepository
	users      *MockUserRepository
	deliveries *MockDeliveryMethodRepository
	reader     *sdkmetric.ManualReader
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	metrics, err := telemetry.NewShopMetrics(provider.Meter(telemetry.MeterName))
	require.NoError(t, err)

	env := &orderTestEnv{
		orders:     new(MockOrderRepository),
		products:   new(MockProductRepository),
		users:      new(MockUserRepository),
		deliveries: new(MockDeliveryMethodRepository),
		reader:     reader,
	}
	env.svc = NewOrderService(env.orders, env.products, env.users, env.deliveries, metrics, zap.NewNop())
	env.svc.now = func() time.Time { return fixedNow }
	return env
}

// backfills returns the value of the price backfill counter
func (e *orderTestEnv) backfills(t *testing.T) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, e.reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "shop.order_item.price_backfills" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func catalogProducts() map[int64]*catalog.Product {
	return map[int64]*catalog.Product{
		1: {BaseEntity: shared.BaseEntity{ID: 1}, Name: "Milk", Price: dec("99.90")},
		2: {BaseEntity: shared.BaseEntity{ID: 2}, Name: "Bread", Price: dec("3.50")},
	}
}

func storedOrder() *order.Order {
	return &order.Order{
		BaseEntity: shared.BaseEntity{ID: 12, CreatedAt: fixedNow.Add(-time.Hour)},
		UserID:     3,
		User:       &identity.User{BaseEntity: shared.BaseEntity{ID: 3}, Username: "ivan"},
		Status:     order.OrderStatusNew,
		Items: []order.OrderItem{
			{BaseEntity: shared.BaseEntity{ID: 100}, OrderID: 12, ProductID: 1, Quantity: 1, Price: decPtr("80.00")},
			{BaseEntity: shared.BaseEntity{ID: 101}, OrderID: 12, ProductID: 2, Quantity: 1, Price: decPtr("3.00")},
		},
	}
}

func TestOrderService_SaveItems_Backfill(t *testing.T) {
	env := newOrderTestEnv(t)
	env.orders.On("FindByID", mock.Anything, int64(12)).Return(storedOrder(), nil)
	env.products.On("FindByIDs", mock.Anything, mock.Anything).Return(catalogProducts(), nil)

	var saved []order.OrderItem
	env.orders.On("SaveItems", mock.Anything, int64(12), mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(2).([]order.OrderItem) }).
		Return(nil)

	_, err := env.svc.SaveItems(context.Background(), 12, []OrderItemInput{
		{ID: 100, ProductID: 1, Quantity: 3, Price: decPtr("1.00")}, // stored price is read-only
		{ProductID: 2, Quantity: 2},                                 // backfilled
		{ProductID: 1, Quantity: 1, Price: decPtr("0")},             // zero is kept
	})
	require.NoError(t, err)

	require.Len(t, saved, 3)
	assert.Equal(t, int64(100), saved[0].ID)
	assert.Equal(t, 3, saved[0].Quantity)
	assert.True(t, saved[0].Price.Equal(dec("80.00")))
	assert.True(t, saved[1].Price.Equal(dec("3.50")))
	assert.True(t, saved[2].Price.IsZero())
	for _, it := range saved {
		assert.NotNil(t, it.Price, "every saved item has a price")
	}
	assert.Equal(t, int64(1), env.backfills(t))
}

func TestOrderService_SaveItems_Errors(t *testing.T) {
	tests := []struct {
		name   string
		inputs []OrderItemInput
		want   error
	}{
		{"missing product reference", []OrderItemInput{{Quantity: 1}}, order.ErrItemProductRequired},
		{"unknown product", []OrderItemInput{{ProductID: 99, Quantity: 1}}, shared.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newOrderTestEnv(t)
			env.orders.On("FindByID", mock.Anything, int64(12)).Return(storedOrder(), nil)
			env.products.On("FindByIDs", mock.Anything, mock.Anything).Return(catalogProducts(), nil)

			_, err := env.svc.SaveItems(context.Background(), 12, tt.inputs)
			assert.ErrorIs(t, err, tt.want)
			env.orders.AssertNotCalled(t, "SaveItems", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("item of another order", func(t *testing.T) {
		env := newOrderTestEnv(t)
		env.orders.On("FindByID", mock.Anything, int64(12)).Return(storedOrder(), nil)

		_, err := env.svc.SaveItems(context.Background(), 12, []OrderItemInput{{ID: 555, ProductID: 1, Quantity: 1}})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "VALIDATION_ERROR", de.Code)
	})

	t.Run("missing order", func(t *testing.T) {
		env := newOrderTestEnv(t)
		env.orders.On("FindByID", mock.Anything, int64(8)).Return(nil, shared.ErrNotFound)

		_, err := env.svc.SaveItems(context.Background(), 8, nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_Create(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	env.users.On("FindByID", mock.Anything, int64(3)).Return(&identity.User{Username: "ivan"}, nil)
	env.products.On("FindByIDs", mock.Anything, []int64{1}).Return(catalogProducts(), nil)

	var graph *order.Order
	env.orders.On("SaveGraph", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			graph = args.Get(1).(*order.Order)
			graph.ID = 12
		}).Return(nil)
	env.orders.On("FindByID", mock.Anything, int64(12)).Return(storedOrder(), nil)

	resp, err := env.svc.Create(ctx, CreateOrderRequest{
		UserID:     3,
		TotalPrice: dec("199.80"),
		Items:      []OrderItemInput{{ProductID: 1, Quantity: 2}},
		Payments:   []PaymentInput{{Amount: dec("199.80"), Method: "card"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.ID)
	assert.True(t, resp.ItemsTotal.Equal(dec("83.00")), resp.ItemsTotal.String())

	require.NotNil(t, graph)
	assert.Equal(t, order.OrderStatusNew, graph.Status)
	require.Len(t, graph.Items, 1)
	assert.True(t, graph.Items[0].Price.Equal(dec("99.90")))
	require.Len(t, graph.Payments, 1)
	assert.Equal(t, order.PaymentStatusPending, graph.Payments[0].Status)
	assert.Equal(t, fixedNow, graph.Payments[0].PaymentDate)
	assert.Equal(t, int64(1), env.backfills(t))
}

func TestOrderService_CreateUnknownReferences(t *testing.T) {
	ctx := context.Background()

	t.Run("user", func(t *testing.T) {
		env := newOrderTestEnv(t)
		env.users.On("FindByID", mock.Anything, int64(3)).Return(nil, shared.ErrNotFound)

		_, err := env.svc.Create(ctx, CreateOrderRequest{UserID: 3})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("delivery method", func(t *testing.T) {
		env := newOrderTestEnv(t)
		dm := int64(4)
		env.users.On("FindByID", mock.Anything, int64(3)).Return(&identity.User{}, nil)
		env.deliveries.On("FindByID", mock.Anything, dm).Return(nil, shared.ErrNotFound)

		_, err := env.svc.Create(ctx, CreateOrderRequest{UserID: 3, DeliveryMethodID: &dm})
		assert.ErrorIs(t, err, ErrDeliveryMethodNotFound)
		env.orders.AssertNotCalled(t, "SaveGraph", mock.Anything, mock.Anything)
	})
}

func TestOrderService_GetPaymentStatus(t *testing.T) {
	env := newOrderTestEnv(t)
	o := storedOrder()
	o.Payments = []order.Payment{
		{BaseEntity: shared.BaseEntity{ID: 1}, OrderID: 12, Status: order.PaymentStatusFailed},
		{BaseEntity: shared.BaseEntity{ID: 2}, OrderID: 12, Status: order.PaymentStatusCompleted},
	}
	env.orders.On("FindByID", mock.Anything, int64(12)).Return(o, nil)

	resp, err := env.svc.Get(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "Ошибка, Завершен", resp.PaymentStatus)
	assert.Equal(t, "Заказ #12 от ivan", resp.Display)
	assert.Equal(t, "ivan", resp.Username)
	assert.Len(t, resp.Items, 2)
	assert.Len(t, resp.Payments, 2)
}

func TestOrderService_List(t *testing.T) {
	env := newOrderTestEnv(t)
	filter := shared.DefaultFilter()
	paid := storedOrder()
	paid.Payments = []order.Payment{{Status: order.PaymentStatusCompleted}}
	unpaid := storedOrder()
	unpaid.ID = 13

	env.orders.On("FindAll", mock.Anything, filter).Return([]order.Order{*paid, *unpaid}, nil)
	env.orders.On("Count", mock.Anything, filter).Return(int64(2), nil)

	rows, total, err := env.svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Завершен", rows[0].PaymentStatus)
	assert.Equal(t, order.NotPaid, rows[1].PaymentStatus)
	assert.Nil(t, rows[0].Payments)
	assert.Nil(t, rows[0].Items)
}

func TestOrderService_UpdateClearsDeliveryMethod(t *testing.T) {
	env := newOrderTestEnv(t)
	o := storedOrder()
	dm := int64(4)
	o.DeliveryMethodID = &dm
	env.orders.On("FindByID", mock.Anything, int64(12)).Return(o, nil)
	env.orders.On("SaveGraph", mock.Anything, o).Return(nil)

	zero := int64(0)
	status := "shipped"
	resp, err := env.svc.Update(context.Background(), 12, UpdateOrderRequest{DeliveryMethodID: &zero, Status: &status})
	require.NoError(t, err)
	assert.Nil(t, resp.DeliveryMethodID)
	assert.Equal(t, "shipped", resp.Status)
	assert.Equal(t, "Отправлен", resp.StatusLabel)
	assert.Len(t, o.Items, 2, "items untouched when absent from the request")
	env.users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestPaymentService(t *testing.T) {
	ctx := context.Background()

	t.Run("create dates the payment", func(t *testing.T) {
		payments, orders := new(MockPaymentRepository), new(MockOrderRepository)
		svc := NewPaymentService(payments, orders)
		svc.now = func() time.Time { return fixedNow }

		orders.On("FindByID", ctx, int64(12)).Return(storedOrder(), nil)
		payments.On("Save", ctx, mock.AnythingOfType("*order.Payment")).
			Run(func(args mock.Arguments) { args.Get(1).(*order.Payment).ID = 4 }).
			Return(nil)

		resp, err := svc.Create(ctx, CreatePaymentRequest{OrderID: 12, Amount: dec("10"), Method: "cash"})
		require.NoError(t, err)
		assert.Equal(t, fixedNow, resp.PaymentDate)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "Наличные", resp.MethodLabel)
		assert.Equal(t, "Платеж #4 для заказа #12", resp.Display)
	})

	t.Run("unknown order", func(t *testing.T) {
		payments, orders := new(MockPaymentRepository), new(MockOrderRepository)
		orders.On("FindByID", ctx, int64(99)).Return(nil, shared.ErrNotFound)

		_, err := NewPaymentService(payments, orders).Create(ctx, CreatePaymentRequest{OrderID: 99, Method: "card"})
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("update keeps payment date", func(t *testing.T) {
		payments, orders := new(MockPaymentRepository), new(MockOrderRepository)
		p := &order.Payment{BaseEntity: shared.BaseEntity{ID: 4}, OrderID: 12, PaymentDate: fixedNow, Amount: dec("10"), Method: order.PaymentMethodCard, Status: order.PaymentStatusPending}
		payments.On("FindByID", ctx, int64(4)).Return(p, nil)
		payments.On("Save", ctx, p).Return(nil)

		completed := "completed"
		resp, err := NewPaymentService(payments, orders).Update(ctx, 4, UpdatePaymentRequest{Status: &completed})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, fixedNow, resp.PaymentDate)
	})
}

func TestDeliveryMethodService(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDeliveryMethodRepository)
	svc := NewDeliveryMethodService(repo)

	repo.On("Save", ctx, mock.AnythingOfType("*order.DeliveryMethod")).Return(nil)
	resp, err := svc.Create(ctx, CreateDeliveryMethodRequest{Name: "Courier", Price: dec("300")})
	require.NoError(t, err)
	assert.Equal(t, "Courier", resp.Display)

	_, err = svc.Create(ctx, CreateDeliveryMethodRequest{Name: "Free", Price: dec("-1")})
	assert.Error(t, err)
}
