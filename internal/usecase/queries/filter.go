package queries

import (
	"slices"
	"strings"
	"time"

	"room-booking/internal/domain/room"

	"github.com/google/uuid"
)

// BookingFilter narrows booking listings. Nil fields add no constraint; the
// rest are AND-combined.
type BookingFilter struct {
	RoomID       *uuid.UUID
	RequestedBy  *uuid.UUID
	ApprovedBy   *uuid.UUID
	MinStartTime *time.Time
	MaxEndTime   *time.Time
}

type BookingPredicate func(*BookingView) bool

// Predicates compiles the filter for stores that evaluate it in memory.
func (f BookingFilter) Predicates() []BookingPredicate {
	var ps []BookingPredicate
	if f.RoomID != nil {
		id := *f.RoomID
		ps = append(ps, func(v *BookingView) bool { return v.RoomID == id })
	}
	if f.RequestedBy != nil {
		id := *f.RequestedBy
		ps = append(ps, func(v *BookingView) bool { return v.RequestedBy == id })
	}
	if f.ApprovedBy != nil {
		id := *f.ApprovedBy
		ps = append(ps, func(v *BookingView) bool { return v.ApprovedBy != nil && *v.ApprovedBy == id })
	}
	if f.MinStartTime != nil {
		t := *f.MinStartTime
		ps = append(ps, func(v *BookingView) bool { return !v.StartTime.Before(t) })
	}
	if f.MaxEndTime != nil {
		t := *f.MaxEndTime
		ps = append(ps, func(v *BookingView) bool { return !v.EndTime.After(t) })
	}
	return ps
}

func (f BookingFilter) Matches(v *BookingView) bool {
	for _, p := range f.Predicates() {
		if !p(v) {
			return false
		}
	}
	return true
}

// RoomFilter narrows room listings. A non-empty AmenityIDs keeps only rooms
// that have every listed amenity.
type RoomFilter struct {
	Name        *string
	MinCapacity *int
	MaxCapacity *int
	Status      *room.Status
	Type        *room.Type
	AmenityIDs  []uuid.UUID
}

type RoomPredicate func(*RoomView) bool

func (f RoomFilter) Predicates() []RoomPredicate {
	var ps []RoomPredicate
	if f.Name != nil {
		name := *f.Name
		ps = append(ps, func(v *RoomView) bool { return strings.Contains(v.Name, name) })
	}
	if f.MinCapacity != nil {
		n := *f.MinCapacity
		ps = append(ps, func(v *RoomView) bool { return v.Capacity >= n })
	}
	if f.MaxCapacity != nil {
		n := *f.MaxCapacity
		ps = append(ps, func(v *RoomView) bool { return v.Capacity <= n })
	}
	if f.Status != nil {
		s := f.Status.String()
		ps = append(ps, func(v *RoomView) bool { return v.Status == s })
	}
	if f.Type != nil {
		t := f.Type.String()
		ps = append(ps, func(v *RoomView) bool { return v.Type == t })
	}
	if required := f.DistinctAmenityIDs(); len(required) > 0 {
		ps = append(ps, func(v *RoomView) bool {
			matched := 0
			for _, id := range required {
				if slices.Contains(v.AmenityIDs, id) {
					matched++
				}
			}
			return matched == len(required)
		})
	}
	return ps
}

func (f RoomFilter) Matches(v *RoomView) bool {
	for _, p := range f.Predicates() {
		if !p(v) {
			return false
		}
	}
	return true
}

// DistinctAmenityIDs drops repeated ids so "has all of" compares against the
// size of the set, not the request list.
func (f RoomFilter) DistinctAmenityIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(f.AmenityIDs))
	for _, id := range f.AmenityIDs {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
