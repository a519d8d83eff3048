//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertHeaders checks response headers. An empty expected value asserts the
// header is absent.
func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for key, want := range expected {
		if want == "" {
			assert.Emptyf(t, w.Header().Values(key), "header %s should be absent", key)
			continue
		}
		assert.Equalf(t, want, w.Header().Get(key), "header %s mismatch", key)
	}
}
