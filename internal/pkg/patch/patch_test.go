//go:build unit

package patch_test

import (
	"testing"

	"room-booking/internal/pkg/patch"
	"room-booking/internal/pkg/ptr"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 5, patch.Coalesce(nil, 5))
	assert.Equal(t, 7, patch.Coalesce(ptr.To(7), 5))
	assert.Equal(t, 0, patch.Coalesce(ptr.To(0), 5))
}

func TestCoalesceText(t *testing.T) {
	assert.Equal(t, "old", patch.CoalesceText(nil, "old"))
	assert.Equal(t, "old", patch.CoalesceText(ptr.To("   "), "old"))
	assert.Equal(t, "new", patch.CoalesceText(ptr.To("new"), "old"))
}
