package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchFromFields(t *testing.T) {
	t.Parallel()

	patch, err := patchFromFields(map[string]any{
		"title":    "new title",
		"priority": "high",
		"labels":   []any{"bug", "backend"},
	})
	require.NoError(t, err)

	require.NotNil(t, patch.Title)
	assert.Equal(t, "new title", *patch.Title)
	require.NotNil(t, patch.Priority)
	assert.Equal(t, "high", *patch.Priority)
	assert.Equal(t, []string{"bug", "backend"}, patch.Labels)
	assert.Nil(t, patch.Description)
	assert.Nil(t, patch.Status)
}

func TestPatchFromFieldsEmpty(t *testing.T) {
	t.Parallel()

	patch, err := patchFromFields(map[string]any{})
	require.NoError(t, err)
	assert.True(t, patch.Empty())
}

func TestPatchFromFieldsUnknownField(t *testing.T) {
	t.Parallel()

	_, err := patchFromFields(map[string]any{"severity": "high"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field: severity")
}

func TestPatchFromFieldsLabelsMustBeList(t *testing.T) {
	t.Parallel()

	_, err := patchFromFields(map[string]any{"labels": "bug"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "labels must be a list")

	_, err = patchFromFields(map[string]any{"labels": []any{"ok", 7}})
	require.Error(t, err)
}

func TestPatchFromFieldsEmptyLabelListClears(t *testing.T) {
	t.Parallel()

	patch, err := patchFromFields(map[string]any{"labels": []any{}})
	require.NoError(t, err)
	require.NotNil(t, patch.Labels)
	assert.Empty(t, patch.Labels)
}

func TestPatchFromFieldsScalarCoercion(t *testing.T) {
	t.Parallel()

	// JSON numbers arrive as float64; they still become usable strings.
	patch, err := patchFromFields(map[string]any{"title": 42})
	require.NoError(t, err)
	require.NotNil(t, patch.Title)
	assert.Equal(t, "42", *patch.Title)
}
