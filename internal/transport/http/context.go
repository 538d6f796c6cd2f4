package http

import "context"

type contextKey string

const tenantContextKey contextKey = "tenant"

// withTenant stores the authenticated tenant in the request context
func withTenant(ctx context.Context, tenant string) context.Context {
	return context.WithValue(ctx, tenantContextKey, tenant)
}

// GetTenant returns the authenticated tenant, or "" when unauthenticated
func GetTenant(ctx context.Context) string {
	if tenant, ok := ctx.Value(tenantContextKey).(string); ok {
		return tenant
	}
	return ""
}
