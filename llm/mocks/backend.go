package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Backend is a testify mock of llm.Backend.
type Backend struct {
	mock.Mock
}

// NewBackend returns a mock that asserts its expectations when the test ends.
func NewBackend(t interface {
	mock.TestingT
	Cleanup(func())
}) *Backend {
	m := &Backend{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Backend) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}
