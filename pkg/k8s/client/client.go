// Package client builds Kubernetes API clients for kubenum.
//
// Clients talk to a single API endpoint given on the command line. No
// credentials are configured; the endpoint must allow anonymous reads or be
// fronted by something that authenticates (kubectl proxy, for example).
package client

import (
	"fmt"
	"net/url"
	"strings"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
)

// Option configures the rest.Config built by BuildRestConfig.
type Option func(*rest.Config)

// WithInsecureSkipTLSVerify disables server certificate verification when skip is true.
func WithInsecureSkipTLSVerify(skip bool) Option {
	return func(c *rest.Config) {
		c.Insecure = skip
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *rest.Config) {
		c.UserAgent = ua
	}
}

// BuildRestConfig returns a rest.Config for apiURL.
// The URL must be absolute with an http or https scheme.
func BuildRestConfig(apiURL string, opts ...Option) (*rest.Config, error) {
	host := strings.TrimSpace(apiURL)
	u, err := url.Parse(host)
	if err != nil {
		return nil, enumerrors.Wrap(enumerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid API URL %q", apiURL), err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, enumerrors.New(enumerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid API URL %q: expected http(s)://host[:port]", apiURL))
	}

	config := &rest.Config{
		Host: host,
	}
	for _, opt := range opts {
		opt(config)
	}

	return config, nil
}

// BuildKubeClient creates a Kubernetes client for apiURL.
//
// Example:
//
//	clientset, config, err := client.BuildKubeClient("https://127.0.0.1:6443",
//	    client.WithInsecureSkipTLSVerify(true))
//	if err != nil {
//	    return fmt.Errorf("failed to build client: %w", err)
//	}
func BuildKubeClient(apiURL string, opts ...Option) (*kubernetes.Clientset, *rest.Config, error) {
	config, err := BuildRestConfig(apiURL, opts...)
	if err != nil {
		return nil, nil, err
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, enumerrors.Wrap(enumerrors.ErrCodeInvalidRequest, "failed to create kubernetes client", err)
	}

	return client, config, nil
}
