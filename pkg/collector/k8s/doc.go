// Package k8s collects Kubernetes cluster configuration into a snapshot.
//
// The collector issues one cluster-wide list call per resource type, in a
// fixed order, and converts every returned object to its JSON form:
//
//  1. namespaces
//  2. pods
//  3. services
//  4. deployments (apps/v1)
//  5. secrets
//  6. configmaps
//  7. roles (rbac.authorization.k8s.io/v1)
//  8. rolebindings
//  9. clusterroles
//  10. clusterrolebindings
//
// Calls are sequential and never retried. If any call fails, or the context
// deadline expires, Collect returns an error and no snapshot.
//
// # Usage
//
//	clientset, _, err := client.BuildKubeClient("https://10.0.0.1:6443")
//	if err != nil {
//	    return err
//	}
//	c := &k8s.Collector{ClientSet: clientset}
//	snap, err := c.Collect(ctx)
//
// # Metrics
//
// Per resource type the collector records list latency
// (kubenum_list_duration_seconds), failed calls (kubenum_list_errors_total)
// and the number of collected objects (kubenum_objects).
package k8s
