package mocks

import (
	"context"

	"bistro-orders/internal/domain"

	"github.com/stretchr/testify/mock"
)

// OrderPublisher is a mock for service.OrderPublisher.
type OrderPublisher struct {
	mock.Mock
}

func (m *OrderPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	ret := m.Called(ctx, event)
	return ret.Error(0)
}

func NewOrderPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderPublisher {
	m := &OrderPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
