package tenant

import (
	"context"
	"errors"
)

var ErrTenantNotFound = errors.New("tenant not found")

// Repository defines the interface for tenant and partition storage
type Repository interface {
	// ListTenants returns the names of every registered tenant.
	ListTenants(ctx context.Context) ([]string, error)
	// ListPartitions returns the partition names holding at least one task
	// for the tenant.
	ListPartitions(ctx context.Context, tenant string) ([]string, error)
	// HasPartition reports whether the tenant has any task in the named
	// partition.
	HasPartition(ctx context.Context, tenant, partition string) (bool, error)
}
