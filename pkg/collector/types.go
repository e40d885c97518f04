package collector

import (
	"context"

	"github.com/NVIDIA/kubenum/pkg/snapshot"
)

// Collector defines the interface for collecting a cluster snapshot.
// Implementations must honour context cancellation and deadlines, and must
// never return a partial snapshot: either every resource type is collected
// or an error is returned.
type Collector interface {
	Collect(ctx context.Context) (*snapshot.Snapshot, error)
}
