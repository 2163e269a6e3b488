package engagement

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/engagement"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// FavoriteService handles favorites. A (user, product) pair is stored once.
type FavoriteService struct {
	repo engagement.FavoriteRepository
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(repo engagement.FavoriteRepository) *FavoriteService {
	return &FavoriteService{repo: repo}
}

// Create favorites a product for a user
func (s *FavoriteService) Create(ctx context.Context, req FavoriteRequest) (*FavoriteResponse, error) {
	favorite, err := engagement.NewFavorite(req.UserID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, favorite.UserID, favorite.ProductID, 0); err != nil {
		return nil, err
	}
	// the unique index still reports a concurrent duplicate as ErrAlreadyFavorite
	if err := s.repo.Save(ctx, favorite); err != nil {
		return nil, err
	}
	return s.Get(ctx, favorite.ID)
}

// Get retrieves a favorite with its user and product
func (s *FavoriteService) Get(ctx context.Context, id int64) (*FavoriteResponse, error) {
	favorite, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToFavoriteResponse(favorite)
	return &response, nil
}

// List retrieves a page of favorites
func (s *FavoriteService) List(ctx context.Context, filter shared.Filter) ([]FavoriteResponse, int64, error) {
	favorites, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]FavoriteResponse, len(favorites))
	for i := range favorites {
		out[i] = ToFavoriteResponse(&favorites[i])
	}
	return out, total, nil
}

// Update moves a favorite to another pair
func (s *FavoriteService) Update(ctx context.Context, id int64, req FavoriteRequest) (*FavoriteResponse, error) {
	favorite, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := favorite.Apply(req.UserID, req.ProductID); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, favorite.UserID, favorite.ProductID, favorite.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, favorite); err != nil {
		return nil, err
	}
	return s.Get(ctx, favorite.ID)
}

// Delete deletes a favorite
func (s *FavoriteService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *FavoriteService) ensureUnique(ctx context.Context, userID, productID, excludeID int64) error {
	exists, err := s.repo.Exists(ctx, userID, productID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return engagement.ErrAlreadyFavorite
	}
	return nil
}
