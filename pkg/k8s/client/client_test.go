package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
)

func TestBuildRestConfig(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		opts     []Option
		wantHost string
		insecure bool
		wantErr  bool
	}{
		{
			name:     "https secure by default",
			url:      "https://10.0.0.1:6443",
			wantHost: "https://10.0.0.1:6443",
		},
		{
			name:     "insecure opt-in",
			url:      "https://10.0.0.1:6443",
			opts:     []Option{WithInsecureSkipTLSVerify(true)},
			wantHost: "https://10.0.0.1:6443",
			insecure: true,
		},
		{
			name:     "http proxy trimmed",
			url:      "  http://127.0.0.1:8001 ",
			wantHost: "http://127.0.0.1:8001",
		},
		{name: "no scheme", url: "10.0.0.1:6443", wantErr: true},
		{name: "ftp scheme", url: "ftp://10.0.0.1", wantErr: true},
		{name: "empty", url: "", wantErr: true},
		{name: "unparsable", url: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := BuildRestConfig(tt.url, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, enumerrors.ErrCodeInvalidRequest, enumerrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, cfg.Host)
			assert.Equal(t, tt.insecure, cfg.Insecure)
			assert.Empty(t, cfg.BearerToken)
			assert.Empty(t, cfg.Username)
		})
	}
}

func TestBuildKubeClient(t *testing.T) {
	cs, cfg, err := BuildKubeClient("https://example.invalid:6443", WithUserAgent("kubenum/test"))
	require.NoError(t, err)
	assert.NotNil(t, cs)
	assert.Equal(t, "kubenum/test", cfg.UserAgent)
}
