package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padwan-ai/padwan-cli/internal/render"
)

func setupRenderer(t *testing.T) {
	t.Helper()
	orig := renderer
	renderer = render.NewRenderer(render.DarkTheme)
	t.Cleanup(func() { renderer = orig })
}

func captureCmd() (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	c := &cobra.Command{}
	c.SetOut(out)
	return c, out
}

func TestModelGroupsCoverAllProviders(t *testing.T) {
	groups, order := modelGroups()
	assert.Equal(t, []string{"openai", "gemini", "mistral", "grok"}, order)
	for _, provider := range order {
		assert.NotEmpty(t, groups[provider], "provider %s", provider)
	}
}

func TestRunModels(t *testing.T) {
	setupRenderer(t)
	origProvider := modelsProviderFlag
	t.Cleanup(func() { modelsProviderFlag = origProvider })
	modelsProviderFlag = ""

	c, out := captureCmd()
	require.NoError(t, runModels(c, nil))

	assert.Contains(t, out.String(), "gpt-4o-mini")
	assert.Contains(t, out.String(), "gemini-2.0-flash")
	assert.Contains(t, out.String(), "grok-4")
	// Provider appears once per group
	assert.Equal(t, 1, strings.Count(out.String(), "mistral-large-latest"))
}

func TestRunModelsProviderFilter(t *testing.T) {
	setupRenderer(t)
	origProvider := modelsProviderFlag
	t.Cleanup(func() { modelsProviderFlag = origProvider })

	modelsProviderFlag = "grok"
	c, out := captureCmd()
	require.NoError(t, runModels(c, nil))
	assert.Contains(t, out.String(), "grok-4")
	assert.NotContains(t, out.String(), "gpt-4o")

	modelsProviderFlag = "nope"
	c, _ = captureCmd()
	require.Error(t, runModels(c, nil))
}

func TestRunInfo(t *testing.T) {
	setupRenderer(t)

	c, out := captureCmd()
	require.NoError(t, runInfo(c, nil))

	assert.Contains(t, out.String(), "openai")
	assert.Contains(t, out.String(), "Total")
}
