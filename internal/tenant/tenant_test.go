package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPartitionFor(t *testing.T) {
	cases := []struct {
		month time.Month
		want  string
	}{
		{time.January, "january"},
		{time.March, "march"},
		{time.December, "december"},
	}
	for _, tc := range cases {
		at := time.Date(2026, tc.month, 15, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, tc.want, PartitionFor(at))
	}
}

func TestPartitionFor_MonthBoundary(t *testing.T) {
	lastOfMarch := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)
	firstOfApril := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "march", PartitionFor(lastOfMarch))
	assert.Equal(t, "april", PartitionFor(firstOfApril))
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListTenants(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockRepo) ListPartitions(ctx context.Context, tenant string) ([]string, error) {
	args := m.Called(ctx, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockRepo) HasPartition(ctx context.Context, tenant, partition string) (bool, error) {
	args := m.Called(ctx, tenant, partition)
	return args.Bool(0), args.Error(1)
}

func TestTenant_Service_HasCurrentPartition(t *testing.T) {
	repo := new(mockRepo)
	now := func() time.Time { return time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC) }
	s := NewService(repo, now)

	assert.Equal(t, "march", s.CurrentPartition())

	repo.On("HasPartition", mock.Anything, "alice", "march").Return(true, nil)

	has, err := s.HasCurrentPartition(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, has)
	repo.AssertExpectations(t)
}

func TestTenant_Service_ListTenants(t *testing.T) {
	repo := new(mockRepo)
	s := NewService(repo, nil)

	repo.On("ListTenants", mock.Anything).Return([]string{"alice", "bob"}, nil)

	tenants, err := s.ListTenants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, tenants)
}
