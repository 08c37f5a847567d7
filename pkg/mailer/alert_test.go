package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAlert(t *testing.T) {
	subject, text, html, err := RenderAlert(AlertData{
		AppName:   "logmanager",
		LogID:     12,
		Severity:  "WARNING",
		Message:   "Unknown actor <Gustav> tried to perform an action.",
		Timestamp: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "[logmanager] WARNING audit log #12", subject)
	assert.Contains(t, text, "Time:    2024-06-01 10:00:00 UTC")
	assert.Contains(t, text, "User:    unknown")
	assert.Contains(t, text, "Message: Unknown actor <Gustav> tried")
	assert.Contains(t, html, "&lt;Gustav&gt;")
}
