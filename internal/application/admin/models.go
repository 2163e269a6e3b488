package admin

import (
	"strconv"

	blogapp "github.com/shopadmin/backend/internal/application/blog"
	catalogapp "github.com/shopadmin/backend/internal/application/catalog"
	engagementapp "github.com/shopadmin/backend/internal/application/engagement"
	identityapp "github.com/shopadmin/backend/internal/application/identity"
	orderapp "github.com/shopadmin/backend/internal/application/order"
	"github.com/shopadmin/backend/internal/domain/blog"
	"github.com/shopadmin/backend/internal/domain/order"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// Services are the application services behind the shop admin
type Services struct {
	Categories      Service[catalogapp.CategoryResponse, catalogapp.CreateCategoryRequest, catalogapp.UpdateCategoryRequest]
	Products        Service[catalogapp.ProductResponse, catalogapp.CreateProductRequest, catalogapp.UpdateProductRequest]
	Orders          Service[orderapp.OrderResponse, orderapp.CreateOrderRequest, orderapp.UpdateOrderRequest]
	Payments        Service[orderapp.PaymentResponse, orderapp.CreatePaymentRequest, orderapp.UpdatePaymentRequest]
	DeliveryMethods Service[orderapp.DeliveryMethodResponse, orderapp.CreateDeliveryMethodRequest, orderapp.UpdateDeliveryMethodRequest]
	Reviews         Service[engagementapp.ReviewResponse, engagementapp.CreateReviewRequest, engagementapp.UpdateReviewRequest]
	Favorites       Service[engagementapp.FavoriteResponse, engagementapp.FavoriteRequest, engagementapp.FavoriteRequest]
	Promotions      Service[engagementapp.PromotionResponse, engagementapp.CreatePromotionRequest, engagementapp.UpdatePromotionRequest]
	Posts           Service[blogapp.PostResponse, blogapp.CreatePostRequest, blogapp.UpdatePostRequest]
	Users           Service[identityapp.UserResponse, identityapp.CreateUserRequest, identityapp.UpdateUserRequest]
}

// NewShopSite registers every shop model
func NewShopSite(svc Services) (*Site, error) {
	site := NewSite()
	resources := []Resource{
		NewResource(CategoryAdmin, svc.Categories),
		NewResource(ProductAdmin, svc.Products),
		NewResource(OrderAdmin, svc.Orders),
		NewResource(PaymentAdmin, svc.Payments),
		NewResource(DeliveryMethodAdmin, svc.DeliveryMethods),
		NewResource(ReviewAdmin, svc.Reviews),
		NewResource(FavoriteAdmin, svc.Favorites),
		NewResource(PromotionAdmin, svc.Promotions),
		NewResource(PostAdmin, svc.Posts),
		NewResource(UserAdmin, svc.Users),
	}
	for _, r := range resources {
		if err := site.Register(r); err != nil {
			return nil, err
		}
	}
	return site, nil
}

var yesNo = []shared.Choice{
	{Value: "true", Label: "Да"},
	{Value: "false", Label: "Нет"},
}

func ratingChoices() []shared.Choice {
	out := make([]shared.Choice, 0, 5)
	for r := 1; r <= 5; r++ {
		v := strconv.Itoa(r)
		out = append(out, shared.Choice{Value: v, Label: v})
	}
	return out
}

// CategoryAdmin lists categories with their product count
var CategoryAdmin = ModelAdmin[catalogapp.CategoryResponse]{
	Name:              "category",
	VerboseName:       "Категория",
	VerboseNamePlural: "Категории",
	ListDisplay: []Column[catalogapp.CategoryResponse]{
		{Name: "name", Label: "Название", Value: func(c *catalogapp.CategoryResponse) any { return c.Name }},
		{Name: "product_count", Label: "Товаров", Value: func(c *catalogapp.CategoryResponse) any { return c.ProductCount }},
	},
	SearchFields: []string{"name"},
}

// ProductAdmin shows the expiry status derived column
var ProductAdmin = ModelAdmin[catalogapp.ProductResponse]{
	Name:              "product",
	VerboseName:       "Товар",
	VerboseNamePlural: "Товары",
	ListDisplay: []Column[catalogapp.ProductResponse]{
		{Name: "name", Label: "Название", Value: func(p *catalogapp.ProductResponse) any { return p.Name }},
		{Name: "brand", Label: "Бренд", Value: func(p *catalogapp.ProductResponse) any { return p.Brand }},
		{Name: "price", Label: "Цена", Value: func(p *catalogapp.ProductResponse) any { return p.Price }},
		{Name: "stock", Label: "Количество на складе", Value: func(p *catalogapp.ProductResponse) any { return p.Stock }},
		{Name: "category", Label: "Категория", Value: func(p *catalogapp.ProductResponse) any { return p.CategoryName }},
		{Name: "expiry_status", Label: "Статус срока", Value: func(p *catalogapp.ProductResponse) any { return p.ExpiryStatus }},
	},
	ListDisplayLinks: []string{"name", "brand"},
	ListFilter: []Filter{
		{Name: "category", Label: "Категория", Kind: FilterExact},
		{Name: "brand", Label: "Бренд", Kind: FilterExact},
	},
	SearchFields: []string{"name", "description", "brand"},
}

// OrderAdmin edits items and payments inline
var OrderAdmin = ModelAdmin[orderapp.OrderResponse]{
	Name:              "order",
	VerboseName:       "Заказ",
	VerboseNamePlural: "Заказы",
	ListDisplay: []Column[orderapp.OrderResponse]{
		{Name: "id", Label: "ID", Value: func(o *orderapp.OrderResponse) any { return o.ID }},
		{Name: "user", Label: "Пользователь", Value: func(o *orderapp.OrderResponse) any { return o.Username }},
		{Name: "total_price", Label: "Общая стоимость", Value: func(o *orderapp.OrderResponse) any { return o.TotalPrice }},
		{Name: "status", Label: "Статус", Value: func(o *orderapp.OrderResponse) any { return o.StatusLabel }},
		{Name: "created_at", Label: "Дата создания", Value: func(o *orderapp.OrderResponse) any { return o.CreatedAt }},
		{Name: "payment_status", Label: "Статус оплаты", Value: func(o *orderapp.OrderResponse) any { return o.PaymentStatus }},
	},
	ListDisplayLinks: []string{"id", "user"},
	ListFilter: []Filter{
		{Name: "status", Label: "Статус", Kind: FilterChoice, Choices: order.OrderStatusChoices()},
		{Name: "created_at", Label: "Дата создания", Kind: FilterDate},
		{Name: "delivery_method", Label: "Метод доставки", Kind: FilterExact},
	},
	SearchFields:  []string{"user__username", "user__email"},
	Ordering:      []string{"-created_at"},
	DateHierarchy: "created_at",
	Inlines: []Inline{
		{
			Name:              "items",
			VerboseName:       "Позиция заказа",
			VerboseNamePlural: "Позиции заказа",
			Style:             "tabular",
			Fields:            []string{"product", "quantity", "price"},
			ReadOnly:          []string{"price"},
		},
		{
			Name:              "payments",
			VerboseName:       "Платеж",
			VerboseNamePlural: "Платежи",
			Style:             "stacked",
			Fields:            []string{"payment_date", "amount", "method", "status"},
			ReadOnly:          []string{"payment_date"},
		},
	},
	ReadOnly: []string{"created_at"},
}

// PaymentAdmin is the plain payment registration
var PaymentAdmin = ModelAdmin[orderapp.PaymentResponse]{
	Name:              "payment",
	VerboseName:       "Платеж",
	VerboseNamePlural: "Платежи",
	ListDisplay: []Column[orderapp.PaymentResponse]{
		{Name: "__str__", Label: "Платеж", Value: func(p *orderapp.PaymentResponse) any { return p.Display }},
		{Name: "amount", Label: "Сумма", Value: func(p *orderapp.PaymentResponse) any { return p.Amount }},
		{Name: "method", Label: "Метод оплаты", Value: func(p *orderapp.PaymentResponse) any { return p.MethodLabel }},
		{Name: "status", Label: "Статус", Value: func(p *orderapp.PaymentResponse) any { return p.StatusLabel }},
		{Name: "payment_date", Label: "Дата платежа", Value: func(p *orderapp.PaymentResponse) any { return p.PaymentDate }},
	},
	ReadOnly: []string{"payment_date"},
}

var DeliveryMethodAdmin = ModelAdmin[orderapp.DeliveryMethodResponse]{
	Name:              "deliverymethod",
	VerboseName:       "Метод доставки",
	VerboseNamePlural: "Методы доставки",
	ListDisplay: []Column[orderapp.DeliveryMethodResponse]{
		{Name: "__str__", Label: "Метод доставки", Value: func(d *orderapp.DeliveryMethodResponse) any { return d.Display }},
	},
}

// ReviewAdmin truncates comments in the list
var ReviewAdmin = ModelAdmin[engagementapp.ReviewResponse]{
	Name:              "review",
	VerboseName:       "Отзыв",
	VerboseNamePlural: "Отзывы",
	ListDisplay: []Column[engagementapp.ReviewResponse]{
		{Name: "product", Label: "Товар", Value: func(r *engagementapp.ReviewResponse) any { return r.ProductName }},
		{Name: "user", Label: "Пользователь", Value: func(r *engagementapp.ReviewResponse) any { return r.Username }},
		{Name: "rating", Label: "Рейтинг", Value: func(r *engagementapp.ReviewResponse) any { return r.Rating }},
		{Name: "short_comment", Label: "Комментарий", Value: func(r *engagementapp.ReviewResponse) any { return r.ShortComment }},
		{Name: "created_at", Label: "Дата создания", Value: func(r *engagementapp.ReviewResponse) any { return r.CreatedAt }},
	},
	ListFilter: []Filter{
		{Name: "rating", Label: "Рейтинг", Kind: FilterChoice, Choices: ratingChoices()},
		{Name: "created_at", Label: "Дата создания", Kind: FilterDate},
	},
	SearchFields:  []string{"product__name", "user__username", "comment"},
	DateHierarchy: "created_at",
}

var FavoriteAdmin = ModelAdmin[engagementapp.FavoriteResponse]{
	Name:              "favorite",
	VerboseName:       "Избранное",
	VerboseNamePlural: "Избранные товары",
	ListDisplay: []Column[engagementapp.FavoriteResponse]{
		{Name: "user", Label: "Пользователь", Value: func(f *engagementapp.FavoriteResponse) any { return f.Username }},
		{Name: "product", Label: "Товар", Value: func(f *engagementapp.FavoriteResponse) any { return f.ProductName }},
		{Name: "created_at", Label: "Дата добавления", Value: func(f *engagementapp.FavoriteResponse) any { return f.CreatedAt }},
	},
	ListFilter: []Filter{
		{Name: "created_at", Label: "Дата добавления", Kind: FilterDate},
	},
	DateHierarchy: "created_at",
}

var PromotionAdmin = ModelAdmin[engagementapp.PromotionResponse]{
	Name:              "promotion",
	VerboseName:       "Акция",
	VerboseNamePlural: "Акции",
	ListDisplay: []Column[engagementapp.PromotionResponse]{
		{Name: "__str__", Label: "Акция", Value: func(p *engagementapp.PromotionResponse) any { return p.Display }},
	},
}

// PostAdmin manages blog posts; the slug is derived from the title when empty
var PostAdmin = ModelAdmin[blogapp.PostResponse]{
	Name:              "post",
	VerboseName:       "Пост",
	VerboseNamePlural: "Посты",
	ListDisplay: []Column[blogapp.PostResponse]{
		{Name: "title", Label: "Заголовок", Value: func(p *blogapp.PostResponse) any { return p.Title }},
		{Name: "slug", Label: "Slug", Value: func(p *blogapp.PostResponse) any { return p.Slug }},
		{Name: "author", Label: "Автор", Value: func(p *blogapp.PostResponse) any { return p.AuthorName }},
		{Name: "publish", Label: "Дата публикации", Value: func(p *blogapp.PostResponse) any { return p.Publish }},
		{Name: "status", Label: "Статус", Value: func(p *blogapp.PostResponse) any { return p.StatusLabel }},
	},
	ListFilter: []Filter{
		{Name: "status", Label: "Статус", Kind: FilterChoice, Choices: blog.PostStatusChoices()},
		{Name: "created", Label: "Создано", Kind: FilterDate},
		{Name: "publish", Label: "Дата публикации", Kind: FilterDate},
		{Name: "author", Label: "Автор", Kind: FilterExact},
	},
	SearchFields:  []string{"title", "body"},
	Ordering:      []string{"-publish"},
	DateHierarchy: "publish",
	ReadOnly:      []string{"created", "updated"},
}

var UserAdmin = ModelAdmin[identityapp.UserResponse]{
	Name:              "user",
	VerboseName:       "Пользователь",
	VerboseNamePlural: "Пользователи",
	ListDisplay: []Column[identityapp.UserResponse]{
		{Name: "username", Label: "Имя пользователя", Value: func(u *identityapp.UserResponse) any { return u.Username }},
		{Name: "email", Label: "Email", Value: func(u *identityapp.UserResponse) any { return u.Email }},
		{Name: "is_staff", Label: "Персонал", Value: func(u *identityapp.UserResponse) any { return u.IsStaff }},
		{Name: "is_active", Label: "Активен", Value: func(u *identityapp.UserResponse) any { return u.IsActive }},
	},
	ListFilter: []Filter{
		{Name: "is_staff", Label: "Персонал", Kind: FilterChoice, Choices: yesNo},
		{Name: "is_active", Label: "Активен", Kind: FilterChoice, Choices: yesNo},
	},
	SearchFields: []string{"username", "email"},
	ReadOnly:     []string{"last_login_at"},
}
