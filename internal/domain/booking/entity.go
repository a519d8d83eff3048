package booking

import (
	"errors"
	"time"

	"room-booking/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrStartTimeRequired    = errors.New("startTime is required.")
	ErrEndTimeRequired      = errors.New("endTime is required.")
	ErrRoomIDRequired       = errors.New("roomId is required.")
	ErrStartNotBeforeEnd    = errors.New("startTime must be before endTime.")
	ErrStartInPast          = errors.New("startTime cannot be in the past.")
	ErrSlotUnavailable      = errors.New("Room is unavailable or occupied during the requested time slot.")
	ErrNotFound             = errors.New("Booking not found.")
	ErrApprovalNotPermitted = errors.New("principal is not allowed to approve booking requests.")
)

// Request is an unvalidated booking request as received from a client.
type Request struct {
	RoomID    *uuid.UUID
	StartTime *time.Time
	EndTime   *time.Time
}

// Validate checks the request fail-fast in a fixed order and returns the
// room and slot to admit.
func (r Request) Validate(now time.Time) (uuid.UUID, TimeSlot, error) {
	if r.StartTime == nil {
		return uuid.Nil, TimeSlot{}, ErrStartTimeRequired
	}
	if r.EndTime == nil {
		return uuid.Nil, TimeSlot{}, ErrEndTimeRequired
	}
	if r.RoomID == nil || *r.RoomID == uuid.Nil {
		return uuid.Nil, TimeSlot{}, ErrRoomIDRequired
	}
	slot, err := NewTimeSlot(*r.StartTime, *r.EndTime)
	if err != nil {
		return uuid.Nil, TimeSlot{}, err
	}
	if slot.Start().Before(now) {
		return uuid.Nil, TimeSlot{}, ErrStartInPast
	}
	return *r.RoomID, slot, nil
}

type Booking struct {
	id          uuid.UUID
	roomID      uuid.UUID
	requestedBy uuid.UUID
	approvedBy  *uuid.UUID
	approved    bool
	slot        TimeSlot
	createdAt   time.Time
	updatedAt   time.Time
}

// New creates a booking requested by the principal. Principals holding the
// approval capability get their own bookings approved immediately.
func New(id, roomID uuid.UUID, requester user.Principal, slot TimeSlot, now time.Time) *Booking {
	b := &Booking{
		id:          id,
		roomID:      roomID,
		requestedBy: requester.ID,
		slot:        slot,
		createdAt:   now,
		updatedAt:   now,
	}
	if requester.CanApproveBookings() {
		approver := requester.ID
		b.approved = true
		b.approvedBy = &approver
	}
	return b
}

func Reconstruct(
	id, roomID, requestedBy uuid.UUID,
	approvedBy *uuid.UUID,
	approved bool,
	slot TimeSlot,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		roomID:      roomID,
		requestedBy: requestedBy,
		approvedBy:  approvedBy,
		approved:    approved,
		slot:        slot,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Approve marks the booking approved by approver. Re-approving keeps the
// booking approved and records the latest approver.
func (b *Booking) Approve(approver uuid.UUID, now time.Time) {
	b.approved = true
	b.approvedBy = &approver
	b.updatedAt = now
}

// EffectiveSlot returns the slot that would result from a reschedule.
func (b *Booking) EffectiveSlot(start, end *time.Time) (TimeSlot, error) {
	return b.slot.With(start, end)
}

// Reschedule moves the booking; approval state is untouched.
func (b *Booking) Reschedule(slot TimeSlot, now time.Time) {
	b.slot = slot
	b.updatedAt = now
}

func (b *Booking) Status() ApprovalStatus {
	if b.approved {
		return StatusApproved
	}
	return StatusPending
}

func (b *Booking) IsRequestedBy(userID uuid.UUID) bool {
	return b.requestedBy == userID
}

func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) RoomID() uuid.UUID      { return b.roomID }
func (b *Booking) RequestedBy() uuid.UUID { return b.requestedBy }
func (b *Booking) Approved() bool         { return b.approved }
func (b *Booking) Slot() TimeSlot         { return b.slot }
func (b *Booking) StartTime() time.Time   { return b.slot.Start() }
func (b *Booking) EndTime() time.Time     { return b.slot.End() }
func (b *Booking) CreatedAt() time.Time   { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time   { return b.updatedAt }

func (b *Booking) ApprovedBy() *uuid.UUID {
	if b.approvedBy == nil {
		return nil
	}
	id := *b.approvedBy
	return &id
}
