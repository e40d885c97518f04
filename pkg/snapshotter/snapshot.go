package snapshotter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/kubenum/pkg/collector"
	"github.com/NVIDIA/kubenum/pkg/defaults"
	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
	"github.com/NVIDIA/kubenum/pkg/serializer"
)

var _ Snapshotter = (*ClusterSnapshotter)(nil)

// TimeoutMessage is reported when the dump deadline expires.
const TimeoutMessage = "timeout occurred while fetching cluster configuration"

// ClusterSnapshotter dumps the configuration of a cluster.
// Collection runs under a single deadline; output is opened only after the
// whole snapshot has been collected, so a failed dump never leaves a
// partial file behind.
type ClusterSnapshotter struct {
	// Factory creates the collector. Required.
	Factory collector.Factory

	// Timeout bounds the collection. Zero means defaults.DumpTimeout.
	Timeout time.Duration

	// Output opens the destination. If nil, indented JSON goes to stdout.
	Output func() (serializer.Serializer, error)
}

// Measure collects the snapshot and serializes it.
//
// Errors are StructuredErrors: ErrCodeTimeout when the deadline expired,
// ErrCodeUnavailable when the cluster API failed, ErrCodeInternal when
// the output could not be written.
func (s *ClusterSnapshotter) Measure(ctx context.Context) error {
	if s.Factory == nil {
		return enumerrors.New(enumerrors.ErrCodeInternal, "collector factory is not configured")
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaults.DumpTimeout
	}

	runID := uuid.NewString()
	log := slog.With(slog.String("run", runID))
	log.Debug("starting cluster snapshot", slog.Duration("timeout", timeout))

	start := time.Now()
	defer func() {
		dumpDuration.Observe(time.Since(start).Seconds())
	}()

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snap, err := s.Factory.CreateKubernetesCollector().Collect(cctx)
	if err != nil {
		if errors.Is(cctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			dumpTotal.WithLabelValues("timeout").Inc()
			log.Debug("cluster snapshot timed out", slog.Duration("timeout", timeout))
			return enumerrors.WrapWithContext(enumerrors.ErrCodeTimeout, TimeoutMessage, err,
				map[string]any{"timeout": timeout.String(), "run": runID})
		}
		dumpTotal.WithLabelValues("error").Inc()
		log.Debug("failed to collect cluster snapshot", slog.String("error", err.Error()))
		return enumerrors.WrapWithContext(enumerrors.ErrCodeUnavailable,
			"failed to collect cluster configuration", err, map[string]any{"run": runID})
	}

	log.Debug("snapshot collection complete", slog.Int("objects", snap.Count()))

	open := s.Output
	if open == nil {
		open = func() (serializer.Serializer, error) {
			return serializer.NewStdoutWriter(serializer.FormatJSON), nil
		}
	}

	ser, err := open()
	if err != nil {
		dumpTotal.WithLabelValues("error").Inc()
		return enumerrors.Wrap(enumerrors.ErrCodeInternal, "failed to open output", err)
	}
	if closer, ok := ser.(serializer.Closer); ok {
		defer func() {
			if closeErr := closer.Close(); closeErr != nil {
				log.Warn("failed to close serializer", slog.String("error", closeErr.Error()))
			}
		}()
	}

	if err := ser.Serialize(ctx, snap); err != nil {
		dumpTotal.WithLabelValues("error").Inc()
		log.Debug("failed to serialize", slog.String("error", err.Error()))
		return enumerrors.Wrap(enumerrors.ErrCodeInternal, fmt.Sprintf("failed to serialize snapshot (run %s)", runID), err)
	}

	dumpTotal.WithLabelValues("success").Inc()
	dumpObjects.Set(float64(snap.Count()))
	return nil
}
