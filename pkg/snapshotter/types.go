package snapshotter

import "context"

// Snapshotter is the interface that wraps the Measure method.
// Measure collects a snapshot and writes it out.
type Snapshotter interface {
	Measure(ctx context.Context) error
}
