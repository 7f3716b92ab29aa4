package logger

import (
	"bytes"
	"errors"
	"log"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	fn()
	return buf.String()
}

func TestFormatFieldsIsSorted(t *testing.T) {
	out := formatFields(Fields{"b": "two", "a": 1, "c": 2.5})
	assert.Equal(t, "{a=1, b=two, c=2.50}", out)
	assert.Equal(t, "", formatFields(nil))
}

func TestInfoAndError(t *testing.T) {
	out := captureLog(t, func() {
		Info("Clip stored", Fields{"clip_id": "abc"})
		Error("Generation failed", errors.New("boom"), Fields{"status": 502})
	})

	assert.Contains(t, out, "[INFO] Clip stored {clip_id=abc}")
	assert.Contains(t, out, "[ERROR] Generation failed: boom {status=502}")
}

func TestWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/generate", nil)
	c.Set("request_id", "req-1")
	c.Set("session_id", "sess-1")

	fields := WithContext(c)

	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "sess-1", fields["session_id"])
	assert.Equal(t, "/generate", fields["path"])
}
