package room

import "github.com/google/uuid"

// amenityNamespace makes reference amenity ids stable across stores and restarts.
var amenityNamespace = uuid.MustParse("6f1c9a52-3d0e-4c1b-9a7e-2b5d8e4f7a10")

type Amenity struct {
	ID   uuid.UUID
	Name string
}

func NewReferenceAmenity(name string) Amenity {
	return Amenity{
		ID:   uuid.NewSHA1(amenityNamespace, []byte(name)),
		Name: name,
	}
}

// DefaultAmenities is the catalog seeded at startup.
func DefaultAmenities() []Amenity {
	names := []string{
		"Projector",
		"Whiteboard",
		"Air Conditioning",
		"Video Conferencing",
		"Sound System",
		"Computers",
		"Wheelchair Access",
		"Smart Board",
	}
	out := make([]Amenity, len(names))
	for i, n := range names {
		out[i] = NewReferenceAmenity(n)
	}
	return out
}
