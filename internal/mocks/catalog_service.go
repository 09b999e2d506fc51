package mocks

import (
	"bistro-orders/internal/domain"

	"github.com/stretchr/testify/mock"
)

// CatalogServiceInterface is a mock for service.CatalogServiceInterface.
type CatalogServiceInterface struct {
	mock.Mock
}

func (m *CatalogServiceInterface) ListMenu() ([]domain.MenuItem, error) {
	ret := m.Called()

	var r0 []domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (m *CatalogServiceInterface) GetItem(itemID string) (*domain.MenuItem, error) {
	ret := m.Called(itemID)

	var r0 *domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func NewCatalogServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogServiceInterface {
	m := &CatalogServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
