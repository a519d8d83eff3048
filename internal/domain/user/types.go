package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

type Capability string

const (
	CapViewRooms             Capability = "view_rooms"
	CapCreateRooms           Capability = "create_rooms"
	CapEditRooms             Capability = "edit_rooms"
	CapDeleteRooms           Capability = "delete_rooms"
	CapViewBookings          Capability = "view_bookings"
	CapCreateBookings        Capability = "create_bookings"
	CapEditBookings          Capability = "edit_bookings"
	CapDeleteBookings        Capability = "delete_bookings"
	CapEditOwnBookings       Capability = "edit_own_bookings"
	CapDeleteOwnBookings     Capability = "delete_own_bookings"
	CapRequestBooking        Capability = "request_booking"
	CapApproveBookingRequest Capability = "approve_booking_request"
)

var managerCapabilities = []Capability{
	CapViewRooms, CapCreateRooms, CapEditRooms, CapDeleteRooms,
	CapViewBookings, CapCreateBookings, CapEditBookings, CapDeleteBookings,
	CapApproveBookingRequest,
}

var roleCapabilities = map[Role][]Capability{
	RoleAdmin:   managerCapabilities,
	RoleManager: managerCapabilities,
	RoleUser: {
		CapViewRooms, CapViewBookings,
		CapRequestBooking, CapEditOwnBookings, CapDeleteOwnBookings,
	},
}

// Capabilities resolves the fixed capability set granted to the role.
// Unknown roles get an empty set.
func (r Role) Capabilities() CapabilitySet {
	return NewCapabilitySet(roleCapabilities[r]...)
}
