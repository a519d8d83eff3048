//go:build unit

package room_test

import (
	"strings"
	"testing"
	"time"

	"room-booking/internal/domain/room"
	"room-booking/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

func validSpec() room.Spec {
	return room.Spec{
		Identifier:  "B-101",
		Name:        "Main Lab",
		Description: ptr.To("  second floor  "),
		Capacity:    ptr.To(30),
		Status:      ptr.To(room.StatusAvailable),
		Type:        ptr.To(room.TypeComputerLab),
	}
}

func TestNewRoom(t *testing.T) {
	t.Run("valid spec", func(t *testing.T) {
		a, b := uuid.New(), uuid.New()
		spec := validSpec()
		spec.AmenityIDs = []uuid.UUID{a, b, a}

		r, err := room.NewRoom(uuid.New(), spec, now)
		require.NoError(t, err)

		assert.Equal(t, "B-101", r.Identifier())
		assert.Equal(t, "second floor", *r.Description())
		assert.Equal(t, 30, r.Capacity())
		assert.True(t, r.IsAvailable())
		assert.ElementsMatch(t, []uuid.UUID{a, b}, r.AmenityIDs())
		assert.Equal(t, now, r.CreatedAt())
		assert.Equal(t, now, r.UpdatedAt())
	})

	tests := []struct {
		name    string
		mutate  func(*room.Spec)
		wantErr error
	}{
		{name: "blank identifier", mutate: func(s *room.Spec) { s.Identifier = "  " }, wantErr: room.ErrIdentifierRequired},
		{name: "blank name", mutate: func(s *room.Spec) { s.Name = "" }, wantErr: room.ErrNameRequired},
		{name: "missing capacity", mutate: func(s *room.Spec) { s.Capacity = nil }, wantErr: room.ErrCapacityInvalid},
		{name: "zero capacity", mutate: func(s *room.Spec) { s.Capacity = ptr.To(0) }, wantErr: room.ErrCapacityInvalid},
		{name: "missing status", mutate: func(s *room.Spec) { s.Status = nil }, wantErr: room.ErrStatusRequired},
		{name: "unknown status", mutate: func(s *room.Spec) { s.Status = ptr.To(room.Status("CLOSED")) }, wantErr: room.ErrStatusRequired},
		{name: "missing type", mutate: func(s *room.Spec) { s.Type = nil }, wantErr: room.ErrTypeRequired},
		{name: "identifier too long", mutate: func(s *room.Spec) { s.Identifier = strings.Repeat("x", 51) }, wantErr: room.ErrIdentifierTooLong},
		{name: "description too long", mutate: func(s *room.Spec) { s.Description = ptr.To(strings.Repeat("d", 101)) }, wantErr: room.ErrDescriptionTooLong},
		{name: "identifier checked before name", mutate: func(s *room.Spec) { s.Identifier = ""; s.Name = "" }, wantErr: room.ErrIdentifierRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec()
			tt.mutate(&spec)

			_, err := room.NewRoom(uuid.New(), spec, now)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRoom_ApplyPatch(t *testing.T) {
	later := now.Add(time.Hour)

	t.Run("blank and non-positive values are ignored", func(t *testing.T) {
		r, err := room.NewRoom(uuid.New(), validSpec(), now)
		require.NoError(t, err)

		err = r.ApplyPatch(room.Patch{
			Identifier: ptr.To(""),
			Name:       ptr.To("   "),
			Capacity:   ptr.To(-1),
		}, later)
		require.NoError(t, err)

		assert.Equal(t, "B-101", r.Identifier())
		assert.Equal(t, "Main Lab", r.Name())
		assert.Equal(t, 30, r.Capacity())
		assert.Equal(t, later, r.UpdatedAt())
	})

	t.Run("provided values replace current ones", func(t *testing.T) {
		r, err := room.NewRoom(uuid.New(), validSpec(), now)
		require.NoError(t, err)
		amenity := uuid.New()

		err = r.ApplyPatch(room.Patch{
			Name:       ptr.To("Renamed"),
			Capacity:   ptr.To(12),
			Status:     ptr.To(room.StatusMaintenance),
			AmenityIDs: []uuid.UUID{amenity},
		}, later)
		require.NoError(t, err)

		assert.Equal(t, "Renamed", r.Name())
		assert.Equal(t, 12, r.Capacity())
		assert.False(t, r.IsAvailable())
		assert.Equal(t, []uuid.UUID{amenity}, r.AmenityIDs())
	})

	t.Run("empty amenity list clears the set", func(t *testing.T) {
		spec := validSpec()
		spec.AmenityIDs = []uuid.UUID{uuid.New()}
		r, err := room.NewRoom(uuid.New(), spec, now)
		require.NoError(t, err)

		require.NoError(t, r.ApplyPatch(room.Patch{AmenityIDs: []uuid.UUID{}}, later))
		assert.Empty(t, r.AmenityIDs())
	})

	t.Run("invalid patch leaves the room untouched", func(t *testing.T) {
		r, err := room.NewRoom(uuid.New(), validSpec(), now)
		require.NoError(t, err)

		err = r.ApplyPatch(room.Patch{Name: ptr.To(strings.Repeat("n", 51))}, later)
		assert.ErrorIs(t, err, room.ErrNameTooLong)
		assert.Equal(t, "Main Lab", r.Name())
		assert.Equal(t, now, r.UpdatedAt())

		err = r.ApplyPatch(room.Patch{Type: ptr.To(room.Type("KITCHEN"))}, later)
		assert.ErrorIs(t, err, room.ErrTypeRequired)
	})
}

func TestCatalogs(t *testing.T) {
	assert.Len(t, room.SortedTypes(), 18)
	for _, typ := range room.SortedTypes() {
		assert.True(t, typ.IsValid())
		assert.NotEmpty(t, typ.Label())
	}
	assert.Equal(t, "Drama/Theater Room", room.TypeDramaTheaterRoom.Label())
	assert.Equal(t, "In Maintenance", room.StatusMaintenance.Label())
	assert.Len(t, room.AllStatuses(), 3)

	a := room.NewReferenceAmenity("Projector")
	assert.Equal(t, a.ID, room.NewReferenceAmenity("Projector").ID)
	assert.NotEqual(t, a.ID, room.NewReferenceAmenity("Whiteboard").ID)
}
