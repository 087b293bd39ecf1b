package notification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeBirthdayMessage(t *testing.T) {
	msg, err := ComposeBirthdayMessage(Recipient{Name: "John Doe", Email: "john@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "john@example.com", msg.To.Email)
	assert.Contains(t, msg.Subject, "John Doe")
	assert.Contains(t, msg.TextBody, "Happy Birthday John Doe!")
	assert.Contains(t, msg.HTMLBody, "John Doe")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(msg.HTMLBody), "<html>"))
}

func TestComposeBirthdayMessageEscapesHTML(t *testing.T) {
	msg, err := ComposeBirthdayMessage(Recipient{Name: "<b>Johnny</b>", Email: "j@example.com"})

	require.NoError(t, err)
	assert.NotContains(t, msg.HTMLBody, "<b>Johnny</b>")
	assert.Contains(t, msg.HTMLBody, "&lt;b&gt;Johnny&lt;/b&gt;")
	// Plain-text body is not escaped.
	assert.Contains(t, msg.TextBody, "<b>Johnny</b>")
}
