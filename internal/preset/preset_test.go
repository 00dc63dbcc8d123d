package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByID(t *testing.T) {
	p, err := ByID("code-review")
	require.NoError(t, err)

	assert.Equal(t, "Code Review", p.Name)
	assert.NotEmpty(t, p.SystemPrompt)
	assert.NotEmpty(t, p.UserPromptTemplate)
	assert.Greater(t, p.MaxTokensHint, 0)
}

func TestByIDUnknown(t *testing.T) {
	_, err := ByID("nonexistent")
	assert.Error(t, err)
}

func TestAllPresetsComplete(t *testing.T) {
	all := All()
	require.Len(t, all, 10)

	seen := make(map[string]bool)
	for _, p := range all {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Description)
		assert.NotEmpty(t, p.SystemPrompt)
		assert.NotEmpty(t, p.UserPromptTemplate)
		assert.NotEmpty(t, p.SuggestedModel)
		assert.Greater(t, p.MaxTokensHint, 0)
		assert.Greater(t, p.TemperatureHint, float32(0))
		assert.False(t, seen[p.ID], "duplicate preset id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestIDsStableOrder(t *testing.T) {
	assert.Equal(t, []string{
		"code-review",
		"documentation",
		"refactoring",
		"bug-analysis",
		"security-audit",
		"test-generation",
		"architecture-review",
		"performance-analysis",
		"migration-plan",
		"api-design",
	}, IDs())
}
