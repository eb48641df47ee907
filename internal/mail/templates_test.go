package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererWelcome(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	html, err := r.Welcome("Jamie")
	require.NoError(t, err)
	assert.Contains(t, html, "Welcome Jamie!")
}

func TestRendererPasswordReset(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	html, err := r.PasswordReset("Jamie", "https://app.example.com/reset-password?token=abc")
	require.NoError(t, err)
	assert.Contains(t, html, "https://app.example.com/reset-password?token=abc")
	assert.Contains(t, html, "Hi Jamie")
}

func TestRendererEscapesHostileNames(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	html, err := r.Welcome("<script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
