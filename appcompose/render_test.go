package appcompose

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLiteralLayout(t *testing.T) {
	out := New("services:\n  app:\n    image: nginx\n").RenderLiteral()

	// The literal form is valid JSON despite being template-built.
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "services:\n  app:\n    image: nginx\n", doc["docker_compose_file"])
	assert.Equal(t, DefaultPreLaunchScript, doc["pre_launch_script"])
	assert.Equal(t, DefaultSalt, doc["salt"])

	// Fixed layout: four-space indentation, no space after separators,
	// no trailing newline.
	assert.True(t, strings.HasPrefix(out, "{\n    \"allowed_envs\":[],\n    \"default_gateway_domain\":null,\n"))
	assert.Contains(t, out, "    \"features\":[\n        \"kms\",\n        \"tproxy-net\"\n    ],\n")
	assert.True(t, strings.HasSuffix(out, "    \"tproxy_enabled\":true\n}"))
}

func TestRenderLiteralFieldOrderIsFixed(t *testing.T) {
	out := New("x").RenderLiteral()

	order := []string{
		`"allowed_envs"`, `"default_gateway_domain"`, `"docker_compose_file"`,
		`"features"`, `"gateway_enabled"`, `"kms_enabled"`,
		`"local_key_provider_enabled"`, `"manifest_version"`, `"name"`,
		`"no_instance_id"`, `"pre_launch_script"`, `"public_logs"`,
		`"public_sysinfo"`, `"runner"`, `"salt"`, `"tproxy_enabled"`,
	}
	prev := -1
	for _, field := range order {
		idx := strings.Index(out, field)
		require.GreaterOrEqual(t, idx, 0, "missing field %s", field)
		assert.Greater(t, idx, prev, "field %s out of order", field)
		prev = idx
	}
}

func TestRenderLiteralEscapesFreeTextFields(t *testing.T) {
	m := New("line1\nline2\t\"quoted\" \\ back",
		WithPreLaunchScript("echo \"hi\"\n"))
	out := m.RenderLiteral()

	assert.Contains(t, out, `"docker_compose_file":"line1\nline2\t\"quoted\" \\ back",`)
	assert.Contains(t, out, `"pre_launch_script":"echo \"hi\"\n",`)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "line1\nline2\t\"quoted\" \\ back", doc["docker_compose_file"])
}

func TestRenderLiteralKeepsNonASCIILiteral(t *testing.T) {
	out := New("comment: caché ☕\n").RenderLiteral()
	assert.Contains(t, out, "caché ☕")
	assert.NotContains(t, out, `é`)
	assert.NotContains(t, out, `☕`)
}

func TestRenderLiteralSaltInjection(t *testing.T) {
	out := New("x", WithSalt("ffffffffffffffffffffffffffffffff")).RenderLiteral()
	assert.Contains(t, out, `"salt":"ffffffffffffffffffffffffffffffff",`)
	assert.NotContains(t, out, DefaultSalt)
}

func TestRenderLiteralDiffersFromCanonical(t *testing.T) {
	m := New("services: {}\n")
	literal := m.RenderLiteral()
	canon, err := m.CanonicalJSON()
	require.NoError(t, err)

	// Same document, intentionally different serializations: the
	// canonical form is compact, the literal form carries the fixed
	// indentation the reference system hashes.
	assert.NotEqual(t, literal, canon)
	assert.NotEqual(t, ComputeHash([]byte(literal)), ComputeHash([]byte(canon)))

	var a, b map[string]any
	require.NoError(t, json.Unmarshal([]byte(literal), &a))
	require.NoError(t, json.Unmarshal([]byte(canon), &b))
	assert.Equal(t, a, b)
}
