package k8s

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/kubenum/pkg/snapshot"
	"github.com/NVIDIA/kubenum/pkg/tree"
)

// Collector lists every supported resource type across all namespaces.
type Collector struct {
	ClientSet kubernetes.Interface

	// Limiter, when set, paces the list calls.
	Limiter *rate.Limiter
}

// lister issues one cluster-wide list call and returns the objects.
type lister struct {
	resourceType string
	list         func(ctx context.Context) ([]any, error)
}

// Collect lists each resource type in snapshot.Keys order, one call at a
// time. The first failure aborts the collection.
func (k *Collector) Collect(ctx context.Context) (*snapshot.Snapshot, error) {
	// Check if context is canceled
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k.ClientSet == nil {
		return nil, fmt.Errorf("kubernetes client is not configured")
	}

	b := snapshot.NewBuilder()
	for _, l := range k.listers() {
		if k.Limiter != nil {
			if err := k.Limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter wait before listing %s: %w", l.resourceType, err)
			}
		}

		start := time.Now()
		objs, err := l.list(ctx)
		listDuration.WithLabelValues(l.resourceType).Observe(time.Since(start).Seconds())
		if err != nil {
			listErrors.WithLabelValues(l.resourceType).Inc()
			return nil, fmt.Errorf("failed to list %s: %w", l.resourceType, err)
		}

		items, err := toTree(objs)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", l.resourceType, err)
		}
		objectCount.WithLabelValues(l.resourceType).Set(float64(len(items)))
		slog.Debug("listed resources",
			slog.String("type", l.resourceType),
			slog.Int("count", len(items)),
			slog.Duration("elapsed", time.Since(start)),
		)

		b.Add(l.resourceType, items)
	}

	return b.Build()
}

func (k *Collector) listers() []lister {
	all := metav1.NamespaceAll
	opts := metav1.ListOptions{}
	core := k.ClientSet.CoreV1()
	rbac := k.ClientSet.RbacV1()

	return []lister{
		{snapshot.KeyNamespaces, func(ctx context.Context) ([]any, error) {
			l, err := core.Namespaces().List(ctx, opts)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		}},
		{snapshot.KeyPods, func(ctx context.Context) ([]any, error) {
			l, err := core.Pods(all).List(ctx, opts)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		}},
		{snapshot.KeyServices, func(ctx context.Context) ([]any, error) {
			l, err := core.Services(all).List(ctx, opts)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		}},
		{snapshot.KeyDeployments, func(ctx context.Context) ([]any, error) {
			l, err := k.ClientSet.AppsV1().Deployments(all).List(ctx, opts)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		}},
		{snapshot.KeySecrets, func(ctx context.Context) ([]any, error) {
			l, err := core.Secrets(all).List(ctx, opts)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		}},
		{snapshot.KeyConfigMaps, func(ctx context.Context) ([]any, error) {
			l, err := core.ConfigMaps(all).List(ctx, opts)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		}},
		{snapshot.KeyRoles, func(ctx context.Context) ([]any, error) {
			l, err := rbac.Roles(all).List(ctx, opts)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		}},
		{snapshot.KeyRoleBindings, func(ctx context.Context) ([]any, error) {
			l, err := rbac.RoleBindings(all).List(ctx, opts)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		}},
		{snapshot.KeyClusterRoles, func(ctx context.Context) ([]any, error) {
			l, err := rbac.ClusterRoles().List(ctx, opts)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		}},
		{snapshot.KeyClusterRoleBindings, func(ctx context.Context) ([]any, error) {
			l, err := rbac.ClusterRoleBindings().List(ctx, opts)
			if err != nil {
				return nil, err
			}
			return objects(l.Items), nil
		}},
	}
}

func objects[T any](items []T) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// toTree converts API objects to their JSON form. Timestamps come out as
// RFC 3339 strings and binary secret data as base64, as the API serves them.
func toTree(objs []any) ([]*tree.Value, error) {
	out := make([]*tree.Value, 0, len(objs))
	for _, obj := range objs {
		b, err := json.Marshal(obj)
		if err != nil {
			return nil, err
		}
		v, err := tree.DecodeJSON(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
