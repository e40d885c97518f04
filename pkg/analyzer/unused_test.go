package analyzer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
)

const unusedSnapshot = `{
  "deployments": [
    {
      "metadata": {"name": "web", "namespace": "prod"},
      "spec": {"template": {"spec": {"containers": [
        {"name": "app", "envFrom": [
          {"configMapRef": {"name": "cfg-a"}},
          {"secretRef": {"name": "db-creds"}},
          {"configMapRef": {"name": "cfg-c"}},
          {"secretRef": null, "prefix": "X_"}
        ]},
        {"name": "sidecar"}
      ]}}}
    }
  ],
  "configmaps": [
    {"metadata": {"name": "cfg-a", "namespace": "prod"}},
    {"metadata": {"name": "cfg-b", "namespace": "prod"}}
  ],
  "secrets": [
    {"metadata": {"name": "db-creds", "namespace": "prod"}},
    {"metadata": {"name": "api-token", "namespace": "other"}}
  ]
}`

func TestUnused(t *testing.T) {
	snap := loadSnapshot(t, unusedSnapshot)

	report, err := New().Unused(snap, UnusedOptions{})
	require.NoError(t, err)

	assert.Equal(t, []ObjectRef{{Name: "api-token", Namespace: "other"}}, report.Secrets)
	assert.Equal(t, []ObjectRef{{Name: "cfg-b", Namespace: "prod"}}, report.ConfigMaps)
	assert.Nil(t, report.Dangling)

	want := "Unused Secrets and ConfigMaps:\n" +
		"==============================\n" +
		"Unused Secret: api-token\n" +
		"Unused ConfigMap: cfg-b\n"
	if diff := cmp.Diff(want, renderText(t, report)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestUnused_MatchesByNameAcrossNamespaces(t *testing.T) {
	snap := loadSnapshot(t, `{
	  "deployments": [{"metadata": {"name": "web", "namespace": "a"},
	    "spec": {"template": {"spec": {"containers": [{"name": "c", "envFrom": [{"configMapRef": {"name": "shared"}}]}]}}}}],
	  "configmaps": [{"metadata": {"name": "shared", "namespace": "b"}}]
	}`)

	report, err := New().Unused(snap, UnusedOptions{})
	require.NoError(t, err)
	assert.Empty(t, report.ConfigMaps)
	assert.Empty(t, report.Secrets)
}

func TestUnused_KindsAreDistinct(t *testing.T) {
	snap := loadSnapshot(t, `{
	  "deployments": [{"metadata": {"name": "web", "namespace": "a"},
	    "spec": {"template": {"spec": {"containers": [{"name": "c", "envFrom": [{"secretRef": {"name": "same"}}]}]}}}}],
	  "configmaps": [{"metadata": {"name": "same", "namespace": "a"}}],
	  "secrets": [{"metadata": {"name": "same", "namespace": "a"}}]
	}`)

	report, err := New().Unused(snap, UnusedOptions{})
	require.NoError(t, err)
	assert.Empty(t, report.Secrets)
	assert.Equal(t, []ObjectRef{{Name: "same", Namespace: "a"}}, report.ConfigMaps)
}

func TestUnused_Dangling(t *testing.T) {
	snap := loadSnapshot(t, unusedSnapshot)

	report, err := New().Unused(snap, UnusedOptions{Dangling: true})
	require.NoError(t, err)

	want := []DanglingRef{
		{Kind: RefConfigMap, Name: "cfg-c", Deployment: "prod/web", Suggestion: "cfg-a"},
	}
	assert.Equal(t, want, report.Dangling)

	text := renderText(t, report)
	assert.Contains(t, text, "Missing Secrets and ConfigMaps:\n")
	assert.Contains(t, text, "Missing ConfigMap: cfg-c (referenced by prod/web; did you mean cfg-a?)\n")
}

func TestUnused_DanglingNoCloseMatch(t *testing.T) {
	snap := loadSnapshot(t, `{
	  "deployments": [{"metadata": {"name": "web", "namespace": "a"},
	    "spec": {"template": {"spec": {"containers": [
	      {"name": "c", "envFrom": [{"secretRef": {"name": "zzzzzz"}}]},
	      {"name": "d", "envFrom": [{"secretRef": {"name": "zzzzzz"}}]}
	    ]}}}}],
	  "secrets": [{"metadata": {"name": "database", "namespace": "a"}}]
	}`)

	report, err := New().Unused(snap, UnusedOptions{Dangling: true})
	require.NoError(t, err)
	assert.Equal(t, []DanglingRef{{Kind: RefSecret, Name: "zzzzzz", Deployment: "a/web"}}, report.Dangling)
	assert.Contains(t, renderText(t, report), "Missing Secret: zzzzzz (referenced by a/web)\n")
}

func TestUnused_StructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "envFrom ref without name",
			doc: `{"deployments": [{"metadata": {"name": "web", "namespace": "a"},
				"spec": {"template": {"spec": {"containers": [{"name": "c", "envFrom": [{"configMapRef": {}}]}]}}}}]}`,
		},
		{
			name: "envFrom not a list",
			doc: `{"deployments": [{"metadata": {"name": "web", "namespace": "a"},
				"spec": {"template": {"spec": {"containers": [{"name": "c", "envFrom": "x"}]}}}}]}`,
		},
		{
			name: "configmap without name",
			doc:  `{"configmaps": [{"metadata": {}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Unused(loadSnapshot(t, tt.doc), UnusedOptions{})
			require.Error(t, err)
			assert.Equal(t, enumerrors.ErrCodeInvalidSnapshot, enumerrors.CodeOf(err))
		})
	}
}

func TestClosest(t *testing.T) {
	candidates := []string{"db-creds", "api-token", "cfg-a"}

	assert.Equal(t, "db-creds", closest("db-cred", candidates))
	assert.Equal(t, "cfg-a", closest("cfg-b", candidates))
	assert.Equal(t, "", closest("zzzzzzzz", candidates))
	assert.Equal(t, "", closest("x", nil))
}
