package tenant

import (
	"strings"
	"time"
)

// Tenant is an isolated task namespace for one registered user. Its name is
// the username, unique and immutable once created.
type Tenant struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PartitionFor derives the partition name for the calendar month containing t.
// Partition names are lower-cased English month names ("january"); the case
// policy is fixed for the deployment so the add path and the reminder scan
// always agree.
func PartitionFor(t time.Time) string {
	return strings.ToLower(t.Month().String())
}
