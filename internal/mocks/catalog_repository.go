package mocks

import (
	"bistro-orders/internal/domain"

	"github.com/stretchr/testify/mock"
)

// CatalogRepository is a mock for service.CatalogRepository.
type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) ListMenuItems(restaurant string) ([]domain.MenuItem, error) {
	ret := m.Called(restaurant)

	var r0 []domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (m *CatalogRepository) GetMenuItem(restaurant, itemID string) (*domain.MenuItem, error) {
	ret := m.Called(restaurant, itemID)

	var r0 *domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func NewCatalogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
