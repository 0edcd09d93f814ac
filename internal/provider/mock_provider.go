package provider

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider using testify/mock.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) Query(ctx context.Context, text string) SourceResult {
	args := m.Called(ctx, text)
	return args.Get(0).(SourceResult)
}
