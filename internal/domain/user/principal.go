package user

import (
	"slices"

	"github.com/google/uuid"
)

type CapabilitySet map[Capability]struct{}

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

func (s CapabilitySet) HasAny(caps ...Capability) bool {
	for _, c := range caps {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// List returns the capabilities in a stable order.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	ID           uuid.UUID
	Role         Role
	Capabilities CapabilitySet
}

func NewPrincipal(id uuid.UUID, role Role) (Principal, error) {
	if !role.IsValid() {
		return Principal{}, ErrInvalidRole
	}
	return Principal{
		ID:           id,
		Role:         role,
		Capabilities: role.Capabilities(),
	}, nil
}

func (p Principal) Can(c Capability) bool {
	return p.Capabilities.Has(c)
}

func (p Principal) CanAny(caps ...Capability) bool {
	return p.Capabilities.HasAny(caps...)
}

func (p Principal) CanApproveBookings() bool {
	return p.Can(CapApproveBookingRequest)
}
