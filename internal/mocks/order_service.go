package mocks

import (
	"context"

	"bistro-orders/internal/domain"

	"github.com/stretchr/testify/mock"
)

// OrderServiceInterface is a mock for service.OrderServiceInterface.
type OrderServiceInterface struct {
	mock.Mock
}

func (m *OrderServiceInterface) CreateOrder(ctx context.Context, lines []domain.CartLine, cfg domain.OrderConfig, total float64, note string) (*domain.OrderReceipt, error) {
	ret := m.Called(ctx, lines, cfg, total, note)

	var r0 *domain.OrderReceipt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderReceipt)
	}
	return r0, ret.Error(1)
}

func (m *OrderServiceInterface) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, dineIn bool, tableNumber int) error {
	ret := m.Called(ctx, orderID, status, dineIn, tableNumber)
	return ret.Error(0)
}

func (m *OrderServiceInterface) ValidateOrderData(lines []domain.CartLine, cfg domain.OrderConfig, total float64) domain.CartValidation {
	ret := m.Called(lines, cfg, total)
	return ret.Get(0).(domain.CartValidation)
}

func (m *OrderServiceInterface) ReceiptQR(orderID string) ([]byte, error) {
	ret := m.Called(orderID)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func NewOrderServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
