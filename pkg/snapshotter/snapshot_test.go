package snapshotter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/NVIDIA/kubenum/pkg/collector"
	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
	"github.com/NVIDIA/kubenum/pkg/serializer"
	"github.com/NVIDIA/kubenum/pkg/snapshot"
)

type collectFunc func(ctx context.Context) (*snapshot.Snapshot, error)

func (f collectFunc) Collect(ctx context.Context) (*snapshot.Snapshot, error) { return f(ctx) }

type fakeFactory struct {
	c collector.Collector
}

func (f *fakeFactory) CreateKubernetesCollector() collector.Collector { return f.c }

func TestClusterSnapshotter_Measure(t *testing.T) {
	cs := fake.NewClientset(
		&corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: "db", Namespace: "prod"},
			Data:       map[string][]byte{"password": []byte("hunter2")},
		},
	)

	var buf bytes.Buffer
	s := &ClusterSnapshotter{
		Factory: collector.NewDefaultFactory(cs),
		Output: func() (serializer.Serializer, error) {
			return serializer.NewWriter(serializer.FormatJSON, &buf), nil
		},
	}

	require.NoError(t, s.Measure(context.Background()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \"namespaces\": []"), out)
	assert.Contains(t, out, `"password": "aHVudGVyMg=="`)
	assert.Less(t, strings.Index(out, `"deployments"`), strings.Index(out, `"secrets"`))

	snap, err := snapshot.Decode(strings.NewReader(out), serializer.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Keys, snap.Types())
}

func TestClusterSnapshotter_Timeout(t *testing.T) {
	blocking := collectFunc(func(ctx context.Context) (*snapshot.Snapshot, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	opened := false
	s := &ClusterSnapshotter{
		Factory: &fakeFactory{c: blocking},
		Timeout: 20 * time.Millisecond,
		Output: func() (serializer.Serializer, error) {
			opened = true
			return serializer.NewWriter(serializer.FormatJSON, &bytes.Buffer{}), nil
		},
	}

	err := s.Measure(context.Background())
	require.Error(t, err)
	assert.Equal(t, enumerrors.ErrCodeTimeout, enumerrors.CodeOf(err))
	assert.Contains(t, err.Error(), TimeoutMessage)
	assert.False(t, opened, "output must not be opened on timeout")
}

func TestClusterSnapshotter_CollectorError(t *testing.T) {
	failing := collectFunc(func(context.Context) (*snapshot.Snapshot, error) {
		return nil, errors.New("connection refused")
	})

	path := filepath.Join(t.TempDir(), "out.json")
	s := &ClusterSnapshotter{
		Factory: &fakeFactory{c: failing},
		Output: func() (serializer.Serializer, error) {
			return serializer.NewFileWriterOrStdout(serializer.FormatJSON, path)
		},
	}

	err := s.Measure(context.Background())
	require.Error(t, err)
	assert.Equal(t, enumerrors.ErrCodeUnavailable, enumerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "connection refused")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no output file expected")
}

func TestClusterSnapshotter_FailureLeavesReportingToCaller(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	failing := collectFunc(func(context.Context) (*snapshot.Snapshot, error) {
		return nil, errors.New("connection refused")
	})
	s := &ClusterSnapshotter{Factory: &fakeFactory{c: failing}}

	require.Error(t, s.Measure(context.Background()))
	assert.Empty(t, logs.String())
}

func TestClusterSnapshotter_OutputError(t *testing.T) {
	empty := collectFunc(func(context.Context) (*snapshot.Snapshot, error) {
		return snapshot.NewBuilder().Build()
	})

	s := &ClusterSnapshotter{
		Factory: &fakeFactory{c: empty},
		Output: func() (serializer.Serializer, error) {
			return serializer.NewFileWriterOrStdout(serializer.FormatJSON, "/nonexistent/dir/out.json")
		},
	}

	err := s.Measure(context.Background())
	require.Error(t, err)
	assert.Equal(t, enumerrors.ErrCodeInternal, enumerrors.CodeOf(err))
}

func TestClusterSnapshotter_NoFactory(t *testing.T) {
	s := &ClusterSnapshotter{}
	assert.Error(t, s.Measure(context.Background()))
}

func TestWriteMetrics(t *testing.T) {
	empty := collectFunc(func(context.Context) (*snapshot.Snapshot, error) {
		return snapshot.NewBuilder().Build()
	})
	s := &ClusterSnapshotter{
		Factory: &fakeFactory{c: empty},
		Output: func() (serializer.Serializer, error) {
			return serializer.NewWriter(serializer.FormatJSON, &bytes.Buffer{}), nil
		},
	}
	require.NoError(t, s.Measure(context.Background()))

	path := filepath.Join(t.TempDir(), "kubenum.prom")
	require.NoError(t, WriteMetrics(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "kubenum_dump_total")
	assert.Contains(t, string(b), "kubenum_dump_duration_seconds")
}
