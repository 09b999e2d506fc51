package mocks

import (
	"bistro-orders/internal/domain"

	"github.com/stretchr/testify/mock"
)

// CartServiceInterface is a mock for service.CartServiceInterface.
type CartServiceInterface struct {
	mock.Mock
}

func (m *CartServiceInterface) AddToCart(item *domain.MenuItem, quantity int, instructions string) error {
	ret := m.Called(item, quantity, instructions)
	return ret.Error(0)
}

func (m *CartServiceInterface) RemoveFromCart(lineID string) error {
	ret := m.Called(lineID)
	return ret.Error(0)
}

func (m *CartServiceInterface) UpdateQuantity(lineID string, quantity int) error {
	ret := m.Called(lineID, quantity)
	return ret.Error(0)
}

func (m *CartServiceInterface) UpdateInstructions(lineID, instructions string) error {
	ret := m.Called(lineID, instructions)
	return ret.Error(0)
}

func (m *CartServiceInterface) DuplicateLine(lineID string) error {
	ret := m.Called(lineID)
	return ret.Error(0)
}

func (m *CartServiceInterface) ClearCart() error {
	ret := m.Called()
	return ret.Error(0)
}

func (m *CartServiceInterface) Lines() []domain.CartLine {
	ret := m.Called()

	var r0 []domain.CartLine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CartLine)
	}
	return r0
}

func (m *CartServiceInterface) Summary(mode string) domain.CartSummary {
	ret := m.Called(mode)
	return ret.Get(0).(domain.CartSummary)
}

func (m *CartServiceInterface) IsItemInCart(itemID string) bool {
	ret := m.Called(itemID)
	return ret.Bool(0)
}

func (m *CartServiceInterface) ItemQuantity(itemID string) int {
	ret := m.Called(itemID)
	return ret.Int(0)
}

func (m *CartServiceInterface) ValidateCart() domain.CartValidation {
	ret := m.Called()
	return ret.Get(0).(domain.CartValidation)
}

func NewCartServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartServiceInterface {
	m := &CartServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
