package collector

import (
	"golang.org/x/time/rate"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/kubenum/pkg/collector/k8s"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateKubernetesCollector() Collector
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	// ClientSet is the Kubernetes client used by the collector.
	ClientSet kubernetes.Interface

	// QPS limits list calls per second; 0 disables limiting.
	QPS float64
}

// NewDefaultFactory creates a factory for clientset with no rate limit.
func NewDefaultFactory(clientset kubernetes.Interface) *DefaultFactory {
	return &DefaultFactory{ClientSet: clientset}
}

// CreateKubernetesCollector creates a Kubernetes API collector.
func (f *DefaultFactory) CreateKubernetesCollector() Collector {
	c := &k8s.Collector{ClientSet: f.ClientSet}
	if f.QPS > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(f.QPS), 1)
	}
	return c
}
