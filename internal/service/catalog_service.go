package service

import (
	"errors"

	"bistro-orders/internal/domain"
)

var ErrItemNotFound = errors.New("menu item not found")

// CatalogService is the read side of the menu for one restaurant. The cart
// only ever references items resolved through it.
type CatalogService struct {
	restaurant string
	repo       CatalogRepository
}

func NewCatalogService(restaurant string, repo CatalogRepository) *CatalogService {
	return &CatalogService{restaurant: restaurant, repo: repo}
}

func (s *CatalogService) ListMenu() ([]domain.MenuItem, error) {
	return s.repo.ListMenuItems(s.restaurant)
}

func (s *CatalogService) GetItem(itemID string) (*domain.MenuItem, error) {
	item, err := s.repo.GetMenuItem(s.restaurant, itemID)
	if err != nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}
