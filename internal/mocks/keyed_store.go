package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// KeyedStore is a mock for service.KeyedStore that also satisfies
// service.AtomicCounter.
type KeyedStore struct {
	mock.Mock
}

func (m *KeyedStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	ret := m.Called(ctx, path)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

func (m *KeyedStore) Set(ctx context.Context, path string, value any) error {
	ret := m.Called(ctx, path, value)
	return ret.Error(0)
}

func (m *KeyedStore) GetCounter(ctx context.Context, path string) (int64, error) {
	ret := m.Called(ctx, path)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *KeyedStore) SetCounter(ctx context.Context, path string, value int64) error {
	ret := m.Called(ctx, path, value)
	return ret.Error(0)
}

func (m *KeyedStore) IncrWrap(ctx context.Context, path string, max int64) (int64, error) {
	ret := m.Called(ctx, path, max)
	return ret.Get(0).(int64), ret.Error(1)
}

func NewKeyedStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *KeyedStore {
	m := &KeyedStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
