package order

import "github.com/shopadmin/backend/internal/domain/shared"

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusNew:        "Новый",
	OrderStatusProcessing: "В обработке",
	OrderStatusShipped:    "Отправлен",
	OrderStatusDelivered:  "Доставлен",
	OrderStatusCancelled:  "Отменен",
}

// OrderStatuses lists the statuses in display order
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValid reports whether s is a known status
func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Label returns the display label, or the raw value for unknown statuses
func (s OrderStatus) Label() string {
	if l, ok := orderStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s OrderStatus) String() string {
	return string(s)
}

// OrderStatusChoices returns the statuses with their labels
func OrderStatusChoices() []shared.Choice {
	out := make([]shared.Choice, 0, len(OrderStatuses))
	for _, s := range OrderStatuses {
		out = append(out, shared.Choice{Value: string(s), Label: s.Label()})
	}
	return out
}

// PaymentMethod is how a payment was made
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCard:     "Карта",
	PaymentMethodCash:     "Наличные",
	PaymentMethodTransfer: "Перевод",
}

// PaymentMethods lists the methods in display order
var PaymentMethods = []PaymentMethod{PaymentMethodCard, PaymentMethodCash, PaymentMethodTransfer}

// IsValid reports whether m is a known method
func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

// Label returns the display label
func (m PaymentMethod) Label() string {
	if l, ok := paymentMethodLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentMethodChoices returns the methods with their labels
func PaymentMethodChoices() []shared.Choice {
	out := make([]shared.Choice, 0, len(PaymentMethods))
	for _, m := range PaymentMethods {
		out = append(out, shared.Choice{Value: string(m), Label: m.Label()})
	}
	return out
}

// PaymentStatus is the processing state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentStatusPending:   "Ожидает",
	PaymentStatusCompleted: "Завершен",
	PaymentStatusFailed:    "Ошибка",
}

// PaymentStatuses lists the payment statuses in display order
var PaymentStatuses = []PaymentStatus{PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed}

// IsValid reports whether s is a known payment status
func (s PaymentStatus) IsValid() bool {
	_, ok := paymentStatusLabels[s]
	return ok
}

// Label returns the display label
func (s PaymentStatus) Label() string {
	if l, ok := paymentStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentStatusChoices returns the payment statuses with their labels
func PaymentStatusChoices() []shared.Choice {
	out := make([]shared.Choice, 0, len(PaymentStatuses))
	for _, s := range PaymentStatuses {
		out = append(out, shared.Choice{Value: string(s), Label: s.Label()})
	}
	return out
}
