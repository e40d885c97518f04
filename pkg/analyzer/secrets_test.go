package analyzer

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
	"github.com/NVIDIA/kubenum/pkg/serializer"
	"github.com/NVIDIA/kubenum/pkg/snapshot"
)

func loadSnapshot(t *testing.T, doc string) *snapshot.Snapshot {
	t.Helper()
	snap, err := snapshot.Decode(strings.NewReader(doc), serializer.FormatJSON)
	require.NoError(t, err)
	return snap
}

func renderText(t *testing.T, r serializer.TextRenderer) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.RenderText(&buf))
	return buf.String()
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

const dbSecretSnapshot = `{
  "secrets": [
    {"metadata": {"name": "db", "namespace": "prod"}, "data": {"password": "aHVudGVyMg=="}}
  ],
  "deployments": []
}`

func TestRevealSecrets_EndToEnd(t *testing.T) {
	snap := loadSnapshot(t, dbSecretSnapshot)
	a := New()

	tests := []struct {
		name string
		opts SecretOptions
		want string
	}{
		{
			name: "no filters",
			want: "Secrets and Environment Variables:\n" +
				"==================================\n" +
				"\n" +
				"Secret: db (Namespace: prod)\n" +
				"  password: hunter2\n",
		},
		{
			name: "skip by key",
			opts: SecretOptions{Skip: []string{"password"}},
			want: "Secrets and Environment Variables:\n" +
				"==================================\n" +
				"\n" +
				"Secret: db (Namespace: prod)\n",
		},
		{
			name: "truncate",
			opts: SecretOptions{Truncate: 3},
			want: "Secrets and Environment Variables:\n" +
				"==================================\n" +
				"\n" +
				"Secret: db (Namespace: prod)\n" +
				"  password: hun...\n",
		},
		{
			name: "skip namespace",
			opts: SecretOptions{SkipNamespaces: []string{"pro"}},
			want: "Secrets and Environment Variables:\n" +
				"==================================\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := a.RevealSecrets(snap, tt.opts)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, renderText(t, report)); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRevealSecrets_SkipIsCaseInsensitiveOnValue(t *testing.T) {
	snap := loadSnapshot(t, `{"secrets": [{"metadata": {"name": "s", "namespace": "ns"},
		"data": {"a": "`+b64("PASSWORD123")+`", "b": "`+b64("keep")+`"}}]}`)

	report, err := New().RevealSecrets(snap, SecretOptions{Skip: []string{"password"}})
	require.NoError(t, err)
	require.Len(t, report.Secrets, 1)
	assert.Equal(t, []RevealedValue{{Key: "b", Value: "keep"}}, report.Secrets[0].Data)
}

func TestRevealSecrets_RoundTrip(t *testing.T) {
	values := []string{"hunter2", "", "multi\nline", "ünïcödé", "a longer value with spaces"}

	var data []string
	for i, v := range values {
		data = append(data, `"k`+string(rune('0'+i))+`": "`+b64(v)+`"`)
	}
	snap := loadSnapshot(t, `{"secrets": [{"metadata": {"name": "s", "namespace": "ns"}, "data": {`+
		strings.Join(data, ",")+`}}]}`)

	report, err := New().RevealSecrets(snap, SecretOptions{})
	require.NoError(t, err)
	require.Len(t, report.Secrets[0].Data, len(values))

	for i, rv := range report.Secrets[0].Data {
		assert.False(t, rv.Truncated)
		assert.Equal(t, values[i], rv.Value, "key %s", rv.Key)
	}
}

func TestRevealSecrets_InvalidUTF8(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte{'o', 'k', 0xff})
	snap := loadSnapshot(t, `{"secrets": [{"metadata": {"name": "s", "namespace": "ns"}, "data": {"bin": "`+raw+`"}}]}`)

	report, err := New().RevealSecrets(snap, SecretOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ok\uFFFD", report.Secrets[0].Data[0].Value)
}

func TestRevealSecrets_NullOrMissingData(t *testing.T) {
	snap := loadSnapshot(t, `{"secrets": [
		{"metadata": {"name": "a", "namespace": "ns"}, "data": null},
		{"metadata": {"name": "b", "namespace": "ns"}}
	]}`)

	report, err := New().RevealSecrets(snap, SecretOptions{})
	require.NoError(t, err)
	require.Len(t, report.Secrets, 2)
	assert.Empty(t, report.Secrets[0].Data)
	assert.Empty(t, report.Secrets[1].Data)
}

func TestRevealSecrets_StructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{
			name: "invalid base64",
			doc:  `{"secrets": [{"metadata": {"name": "db", "namespace": "prod"}, "data": {"k": "not base64!"}}]}`,
			msg:  `invalid base64 in secret prod/db key "k"`,
		},
		{
			name: "secret without namespace",
			doc:  `{"secrets": [{"metadata": {"name": "db"}}]}`,
			msg:  "secrets[0]: expected a string at metadata.namespace",
		},
		{
			name: "deployment without containers",
			doc:  `{"deployments": [{"metadata": {"name": "web", "namespace": "prod"}, "spec": {}}]}`,
			msg:  "deployments[0]: expected a list at spec.template.spec.containers",
		},
		{
			name: "env var without name",
			doc: `{"deployments": [{"metadata": {"name": "web", "namespace": "prod"},
				"spec": {"template": {"spec": {"containers": [{"name": "app", "env": [{"value": "x"}]}]}}}}]}`,
			msg: "containers[0].env[0].name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := loadSnapshot(t, tt.doc)
			_, err := New().RevealSecrets(snap, SecretOptions{})
			require.Error(t, err)
			assert.Equal(t, enumerrors.ErrCodeInvalidSnapshot, enumerrors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

const deploymentSnapshot = `{
  "deployments": [
    {
      "metadata": {"name": "web", "namespace": "prod"},
      "spec": {"template": {"spec": {"containers": [
        {"name": "app", "env": [
          {"name": "LOG_LEVEL", "value": "debug"},
          {"name": "DB_PASSWORD", "valueFrom": {"secretKeyRef": {"name": "db", "key": "password"}}},
          {"name": "TOKEN", "value": "abcdefghij"},
          {"name": "EMPTY", "value": null}
        ]},
        {"name": "sidecar"},
        {"name": "proxy", "env": []}
      ]}}}
    },
    {
      "metadata": {"name": "noenv", "namespace": "prod"},
      "spec": {"template": {"spec": {"containers": [{"name": "app"}]}}}
    },
    {
      "metadata": {"name": "worker", "namespace": "kube-system"},
      "spec": {"template": {"spec": {"containers": [{"name": "w", "env": [{"name": "A", "value": "1"}]}]}}}
    }
  ]
}`

func TestRevealSecrets_DeploymentEnv(t *testing.T) {
	snap := loadSnapshot(t, deploymentSnapshot)

	report, err := New().RevealSecrets(snap, SecretOptions{
		Truncate:       4,
		SkipNamespaces: []string{"kube-"},
	})
	require.NoError(t, err)

	want := "Secrets and Environment Variables:\n" +
		"==================================\n" +
		"\n" +
		"Deployment: web (Namespace: prod)\n" +
		"  Container: app\n" +
		"    LOG_LEVEL: debu...\n" +
		"    DB_PASSWORD: N/A\n" +
		"    TOKEN: abcd...\n" +
		"    EMPTY: N/A\n"
	if diff := cmp.Diff(want, renderText(t, report)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRevealSecrets_DeploymentHeaderKeptWhenAllVarsSkipped(t *testing.T) {
	snap := loadSnapshot(t, `{"deployments": [{"metadata": {"name": "web", "namespace": "prod"},
		"spec": {"template": {"spec": {"containers": [{"name": "app", "env": [{"name": "SECRET_KEY", "value": "x"}]}]}}}}]}`)

	report, err := New().RevealSecrets(snap, SecretOptions{Skip: []string{"secret"}})
	require.NoError(t, err)
	require.Len(t, report.Deployments, 1)
	require.Len(t, report.Deployments[0].Containers, 1)
	assert.Empty(t, report.Deployments[0].Containers[0].Env)
}

func TestRevealSecrets_PlaceholderFilteredLikeValues(t *testing.T) {
	snap := loadSnapshot(t, `{"deployments": [{"metadata": {"name": "web", "namespace": "prod"},
		"spec": {"template": {"spec": {"containers": [{"name": "app", "env": [
			{"name": "TOKEN", "valueFrom": {"secretKeyRef": {"name": "api", "key": "token"}}},
			{"name": "MODE", "value": "fast"}
		]}]}}}}]}`)

	tests := []struct {
		name string
		opts SecretOptions
		want []RevealedValue
	}{
		{
			name: "truncated",
			opts: SecretOptions{Truncate: 2},
			want: []RevealedValue{
				{Key: "TOKEN", Value: "N/...", Truncated: true},
				{Key: "MODE", Value: "fa...", Truncated: true},
			},
		},
		{
			name: "skipped by value",
			opts: SecretOptions{Skip: []string{"n/a"}},
			want: []RevealedValue{{Key: "MODE", Value: "fast"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := New().RevealSecrets(snap, tt.opts)
			require.NoError(t, err)
			require.Len(t, report.Deployments, 1)
			require.Len(t, report.Deployments[0].Containers, 1)
			assert.Equal(t, tt.want, report.Deployments[0].Containers[0].Env)
		})
	}
}

func TestTruncate(t *testing.T) {
	inputs := []string{"", "a", "abc", "abcd", "héllo wörld", "日本語のテキスト"}
	limits := []int{-1, 0, 1, 3, 4, 20}

	for _, in := range inputs {
		for _, n := range limits {
			got, cut := truncate(in, n)
			runes := utf8.RuneCountInString(in)

			longer := n > 0 && runes > n
			assert.Equal(t, longer, cut, "truncate(%q, %d)", in, n)
			assert.Equal(t, longer, strings.HasSuffix(got, "...") && got != in, "truncate(%q, %d)", in, n)
			if longer {
				assert.Equal(t, n+3, utf8.RuneCountInString(got))
				assert.True(t, strings.HasPrefix(in, strings.TrimSuffix(got, "...")))
			} else {
				assert.Equal(t, in, got)
			}
		}
	}
}

func TestSecretReport_JSON(t *testing.T) {
	snap := loadSnapshot(t, dbSecretSnapshot)

	report, err := New(WithVersion("v1.0.0"), WithSource("snap.json")).RevealSecrets(snap, SecretOptions{})
	require.NoError(t, err)

	b, err := json.Marshal(report)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "SecretReport", doc["kind"])
	assert.Equal(t, "secretreport.kubenum.io/v1", doc["apiVersion"])

	meta, ok := doc["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "snap.json", meta["source"])
	assert.Equal(t, "v1.0.0", meta["version"])

	secrets, ok := doc["secrets"].([]any)
	require.True(t, ok)
	require.Len(t, secrets, 1)
	assert.Contains(t, string(b), `"value":"hunter2"`)
}
