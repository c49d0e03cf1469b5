package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/okrledger/internal/model"
)

func TestParse(t *testing.T) {
	html, err := NewParser().Parse([]byte("**Shipped** the beta"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<strong>Shipped</strong>")
}

func TestParseDropsRawHTML(t *testing.T) {
	html, err := NewParser().Parse([]byte("<script>alert(1)</script>"))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}

func TestRenderNarrative(t *testing.T) {
	out, err := NewParser().RenderNarrative(model.Narrative{
		Achievements: "- one\n- two",
		NextSteps:    "Hire",
	})
	require.NoError(t, err)

	assert.Len(t, out, 2)
	assert.Contains(t, out["achievements"], "<li>one</li>")
	assert.Contains(t, out["next_steps"], "<p>Hire</p>")
	assert.NotContains(t, out, "challenges")
}
