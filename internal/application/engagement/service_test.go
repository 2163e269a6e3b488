package engagement

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/engagement"
	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id int64) (*engagement.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.Review), args.Error(1)
}

func (m *MockReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]engagement.Review, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engagement.Review), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, r *engagement.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockFavoriteRepository is a mock implementation of FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) FindByID(ctx context.Context, id int64) (*engagement.Favorite, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]engagement.Favorite, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engagement.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Save(ctx context.Context, f *engagement.Favorite) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFavoriteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, productID, excludeID int64) (bool, error) {
	args := m.Called(ctx, userID, productID, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockPromotionRepository is a mock implementation of PromotionRepository
type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) FindByID(ctx context.Context, id int64) (*engagement.Promotion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]engagement.Promotion, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engagement.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) Save(ctx context.Context, p *engagement.Promotion) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPromotionRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPromotionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestReviewService_ShortComment(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReviewRepository)
	svc := NewReviewService(repo)

	long := strings.Repeat("ё", 51)
	repo.On("FindAll", ctx, shared.DefaultFilter()).Return([]engagement.Review{
		{BaseEntity: shared.BaseEntity{ID: 1}, Comment: strings.Repeat("я", 50), Rating: 5},
		{BaseEntity: shared.BaseEntity{ID: 2}, Comment: long, Rating: 1,
			User:    &identity.User{Username: "ivan"},
			Product: &catalog.Product{Name: "Milk"}},
	}, nil)
	repo.On("Count", ctx, shared.DefaultFilter()).Return(int64(2), nil)

	rows, total, err := svc.List(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, strings.Repeat("я", 50), rows[0].ShortComment)
	assert.Equal(t, strings.Repeat("ё", 50)+"...", rows[1].ShortComment)
	assert.Equal(t, long, rows[1].Comment)
	assert.Equal(t, "Отзыв от ivan на Milk", rows[1].Display)
}

func TestReviewService_CreateValidatesRating(t *testing.T) {
	repo := new(MockReviewRepository)
	_, err := NewReviewService(repo).Create(context.Background(), CreateReviewRequest{UserID: 1, ProductID: 1, Rating: 6})
	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFavoriteService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate pair is rejected before saving", func(t *testing.T) {
		repo := new(MockFavoriteRepository)
		repo.On("Exists", ctx, int64(1), int64(2), int64(0)).Return(true, nil)

		_, err := NewFavoriteService(repo).Create(ctx, FavoriteRequest{UserID: 1, ProductID: 2})
		assert.ErrorIs(t, err, engagement.ErrAlreadyFavorite)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("race lost to the unique index", func(t *testing.T) {
		repo := new(MockFavoriteRepository)
		repo.On("Exists", ctx, int64(1), int64(2), int64(0)).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*engagement.Favorite")).Return(engagement.ErrAlreadyFavorite)

		_, err := NewFavoriteService(repo).Create(ctx, FavoriteRequest{UserID: 1, ProductID: 2})
		assert.ErrorIs(t, err, engagement.ErrAlreadyFavorite)
	})

	t.Run("success", func(t *testing.T) {
		repo := new(MockFavoriteRepository)
		repo.On("Exists", ctx, int64(1), int64(2), int64(0)).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*engagement.Favorite")).
			Run(func(args mock.Arguments) { args.Get(1).(*engagement.Favorite).ID = 7 }).
			Return(nil)
		repo.On("FindByID", ctx, int64(7)).Return(&engagement.Favorite{
			BaseEntity: shared.BaseEntity{ID: 7}, UserID: 1, ProductID: 2,
			User: &identity.User{Username: "ivan"}, Product: &catalog.Product{Name: "Milk"},
		}, nil)

		resp, err := NewFavoriteService(repo).Create(ctx, FavoriteRequest{UserID: 1, ProductID: 2})
		require.NoError(t, err)
		assert.Equal(t, "Milk в избранном у ivan", resp.Display)
	})
}

func TestFavoriteService_UpdateExcludesItself(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFavoriteRepository)
	fav := &engagement.Favorite{BaseEntity: shared.BaseEntity{ID: 7}, UserID: 1, ProductID: 2}
	repo.On("FindByID", ctx, int64(7)).Return(fav, nil)
	repo.On("Exists", ctx, int64(1), int64(3), int64(7)).Return(false, nil)
	repo.On("Save", ctx, fav).Return(nil)

	resp, err := NewFavoriteService(repo).Update(ctx, 7, FavoriteRequest{UserID: 1, ProductID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ProductID)
	repo.AssertExpectations(t)
}

func TestPromotionService(t *testing.T) {
	ctx := context.Background()

	t.Run("end before start", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		_, err := NewPromotionService(repo).Create(ctx, CreatePromotionRequest{ProductID: 1, StartDate: "2024-06-10", EndDate: "2024-06-01"})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "VALIDATION_ERROR", de.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("active window", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		svc := NewPromotionService(repo)
		svc.now = func() time.Time { return time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC) }

		repo.On("Save", ctx, mock.AnythingOfType("*engagement.Promotion")).
			Run(func(args mock.Arguments) { args.Get(1).(*engagement.Promotion).ID = 3 }).
			Return(nil)
		repo.On("FindByID", ctx, int64(3)).Return(&engagement.Promotion{
			BaseEntity: shared.BaseEntity{ID: 3},
			ProductID:  1,
			Product:    &catalog.Product{Name: "Milk"},
			StartDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		}, nil)

		resp, err := svc.Create(ctx, CreatePromotionRequest{ProductID: 1, StartDate: "2024-06-01", EndDate: "2024-06-10"})
		require.NoError(t, err)
		assert.True(t, resp.Active)
		assert.Equal(t, "2024-06-10", resp.EndDate)
		assert.Equal(t, "Акция на Milk", resp.Display)
	})
}
