package room

import (
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"room-booking/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrIdentifierRequired = errors.New("identifier is required.")
	ErrNameRequired       = errors.New("name is required.")
	ErrCapacityInvalid    = errors.New("capacity is required and should be greater than zero.")
	ErrStatusRequired     = errors.New("status is required and must be one of AVAILABLE, OCCUPIED, MAINTENANCE.")
	ErrTypeRequired       = errors.New("type is required and must be a known room type.")
	ErrIdentifierTooLong  = errors.New("identifier must be at most 50 characters.")
	ErrNameTooLong        = errors.New("name must be at most 50 characters.")
	ErrDescriptionTooLong = errors.New("description must be at most 100 characters.")
	ErrNotFound           = errors.New("room not found")
	ErrIdentifierTaken    = errors.New("a room with this identifier already exists.")
	ErrUnknownAmenity     = errors.New("amenityIds contains an unknown amenity.")
)

const (
	MaxIdentifierLength  = 50
	MaxNameLength        = 50
	MaxDescriptionLength = 100
)

// Spec is the client-supplied description of a new room.
type Spec struct {
	Identifier  string
	Name        string
	Description *string
	Capacity    *int
	Status      *Status
	Type        *Type
	AmenityIDs  []uuid.UUID
}

// Patch holds partial updates. Blank strings, non-positive capacity and nil
// values leave the field untouched; a non-nil AmenityIDs replaces the set.
type Patch struct {
	Identifier  *string
	Name        *string
	Description *string
	Capacity    *int
	Status      *Status
	Type        *Type
	AmenityIDs  []uuid.UUID
}

type Room struct {
	id          uuid.UUID
	identifier  string
	name        string
	description *string
	capacity    int
	status      Status
	roomType    Type
	amenityIDs  []uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func NewRoom(id uuid.UUID, spec Spec, now time.Time) (*Room, error) {
	identifier := strings.TrimSpace(spec.Identifier)
	if identifier == "" {
		return nil, ErrIdentifierRequired
	}
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if spec.Capacity == nil || *spec.Capacity <= 0 {
		return nil, ErrCapacityInvalid
	}
	if spec.Status == nil || !spec.Status.IsValid() {
		return nil, ErrStatusRequired
	}
	if spec.Type == nil || !spec.Type.IsValid() {
		return nil, ErrTypeRequired
	}

	r := &Room{
		id:          id,
		identifier:  identifier,
		name:        name,
		description: normalizeDescription(spec.Description),
		capacity:    *spec.Capacity,
		status:      *spec.Status,
		roomType:    *spec.Type,
		amenityIDs:  normalizeAmenities(spec.AmenityIDs),
		createdAt:   now,
		updatedAt:   now,
	}
	if err := r.validateLengths(); err != nil {
		return nil, err
	}
	return r, nil
}

func ReconstructRoom(
	id uuid.UUID,
	identifier, name string,
	description *string,
	capacity int,
	status Status,
	roomType Type,
	amenityIDs []uuid.UUID,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:          id,
		identifier:  identifier,
		name:        name,
		description: description,
		capacity:    capacity,
		status:      status,
		roomType:    roomType,
		amenityIDs:  normalizeAmenities(amenityIDs),
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Room) ApplyPatch(p Patch, now time.Time) error {
	if p.Status != nil && !p.Status.IsValid() {
		return ErrStatusRequired
	}
	if p.Type != nil && !p.Type.IsValid() {
		return ErrTypeRequired
	}

	next := *r
	next.identifier = strings.TrimSpace(patch.CoalesceText(p.Identifier, r.identifier))
	next.name = strings.TrimSpace(patch.CoalesceText(p.Name, r.name))
	if p.Description != nil && strings.TrimSpace(*p.Description) != "" {
		next.description = normalizeDescription(p.Description)
	}
	if p.Capacity != nil && *p.Capacity > 0 {
		next.capacity = *p.Capacity
	}
	next.status = patch.Coalesce(p.Status, r.status)
	next.roomType = patch.Coalesce(p.Type, r.roomType)
	if p.AmenityIDs != nil {
		next.amenityIDs = normalizeAmenities(p.AmenityIDs)
	}
	if err := next.validateLengths(); err != nil {
		return err
	}

	next.updatedAt = now
	*r = next
	return nil
}

// IsAvailable reports whether new bookings may be admitted for the room.
func (r *Room) IsAvailable() bool {
	return r.status == StatusAvailable
}

func (r *Room) ID() uuid.UUID           { return r.id }
func (r *Room) Identifier() string      { return r.identifier }
func (r *Room) Name() string            { return r.name }
func (r *Room) Description() *string    { return r.description }
func (r *Room) Capacity() int           { return r.capacity }
func (r *Room) Status() Status          { return r.status }
func (r *Room) Type() Type              { return r.roomType }
func (r *Room) CreatedAt() time.Time    { return r.createdAt }
func (r *Room) UpdatedAt() time.Time    { return r.updatedAt }
func (r *Room) AmenityIDs() []uuid.UUID { return slices.Clone(r.amenityIDs) }

func (r *Room) validateLengths() error {
	if utf8.RuneCountInString(r.identifier) > MaxIdentifierLength {
		return ErrIdentifierTooLong
	}
	if utf8.RuneCountInString(r.name) > MaxNameLength {
		return ErrNameTooLong
	}
	if r.description != nil && utf8.RuneCountInString(*r.description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func normalizeDescription(d *string) *string {
	if d == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*d)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// normalizeAmenities dedupes and orders ids so the set compares stably.
func normalizeAmenities(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}
