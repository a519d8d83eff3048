//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type Edit func(map[string]any)

// JSONBody renders v the way a client would send it and applies edits, so
// tests can put values on the wire that the request DTOs cannot hold.
func JSONBody(t *testing.T, v any, edits ...Edit) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	for _, edit := range edits {
		edit(body)
	}
	return body
}

func Set(key string, value any) Edit {
	return func(m map[string]any) { m[key] = value }
}

func Unset(key string) Edit {
	return func(m map[string]any) { delete(m, key) }
}
