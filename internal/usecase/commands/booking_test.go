//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"room-booking/internal/domain/booking"
	"room-booking/internal/domain/room"
	"room-booking/internal/domain/user"
	"room-booking/internal/infra/memstore"
	"room-booking/internal/pkg/clock"
	"room-booking/internal/pkg/errs"
	"room-booking/internal/pkg/ptr"
	"room-booking/internal/usecase/commands"
	"room-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type BookingCommandsTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memstore.Store
	clock    *clock.MockClock
	commands commands.BookingCommands
	bookings queries.BookingQueries
	rooms    commands.RoomCommands

	admin   user.Principal
	manager user.Principal
	member  user.Principal
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(time.Date(2025, 3, 7, 7, 0, 0, 0, time.UTC))
	s.commands = commands.NewBookingCommands(s.store, s.clock, discardLogger)
	s.bookings = queries.NewBookingQueries(s.store.BookingReadStore())
	s.rooms = commands.NewRoomCommands(s.store, s.clock, discardLogger)

	s.admin = s.principal(user.RoleAdmin)
	s.manager = s.principal(user.RoleManager)
	s.member = s.principal(user.RoleUser)
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) principal(role user.Role) user.Principal {
	p, err := user.NewPrincipal(uuid.New(), role)
	s.Require().NoError(err)
	return p
}

func (s *BookingCommandsTestSuite) createRoom(identifier string, status room.Status) uuid.UUID {
	view, err := s.rooms.Create(s.ctx, commands.CreateRoomParams{
		Identifier: identifier,
		Name:       "Room " + identifier,
		Capacity:   ptr.To(20),
		Status:     ptr.To(status),
		Type:       ptr.To(room.TypeConferenceRoom),
	}, s.admin)
	s.Require().NoError(err)
	return view.ID
}

// at returns 2025-03-07 at hour:minute UTC.
func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 7, hour, minute, 0, 0, time.UTC)
}

func params(roomID uuid.UUID, start, end time.Time) commands.CreateBookingParams {
	return commands.CreateBookingParams{RoomID: &roomID, StartTime: &start, EndTime: &end}
}

func (s *BookingCommandsTestSuite) assertKind(err error, kind error, reason string) {
	s.Require().Error(err)
	s.True(errs.Is(err, kind), "unexpected kind: %v", err)
	if reason != "" {
		s.Equal(reason, errs.Reason(err))
	}
}

// ================================================================================
// Create
// ================================================================================

func (s *BookingCommandsTestSuite) TestCreate_Validation() {
	roomID := s.createRoom("R1", room.StatusAvailable)
	start, end := at(8, 0), at(9, 0)

	tests := []struct {
		name   string
		params commands.CreateBookingParams
		reason string
	}{
		{name: "everything missing reports start first", params: commands.CreateBookingParams{}, reason: "startTime is required."},
		{name: "missing end", params: commands.CreateBookingParams{RoomID: &roomID, StartTime: &start}, reason: "endTime is required."},
		{name: "missing room", params: commands.CreateBookingParams{StartTime: &start, EndTime: &end}, reason: "roomId is required."},
		{name: "end before start", params: params(roomID, end, start), reason: "startTime must be before endTime."},
		{name: "empty interval", params: params(roomID, start, start), reason: "startTime must be before endTime."},
		{name: "start in the past", params: params(roomID, at(6, 0), at(9, 0)), reason: "startTime cannot be in the past."},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.commands.Create(s.ctx, tt.params, s.member)
			s.assertKind(err, errs.ErrInvalidRequest, tt.reason)
		})
	}
}

func (s *BookingCommandsTestSuite) TestCreate_StartingNowIsAccepted() {
	roomID := s.createRoom("R1", room.StatusAvailable)

	view, err := s.commands.Create(s.ctx, params(roomID, s.clock.Now(), at(8, 0)), s.member)
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), view.StartTime)
}

func (s *BookingCommandsTestSuite) TestCreate_ApprovalDependsOnCapability() {
	roomID := s.createRoom("R1", room.StatusAvailable)

	s.Run("member request stays pending", func() {
		view, err := s.commands.Create(s.ctx, params(roomID, at(8, 0), at(9, 0)), s.member)
		s.Require().NoError(err)
		s.False(view.Approved)
		s.Nil(view.ApprovedBy)
		s.Equal(booking.StatusPending.String(), view.Status)
		s.Equal(s.member.ID, view.RequestedBy)
	})

	s.Run("manager booking is approved by the manager", func() {
		view, err := s.commands.Create(s.ctx, params(roomID, at(10, 0), at(11, 0)), s.manager)
		s.Require().NoError(err)
		s.True(view.Approved)
		s.Require().NotNil(view.ApprovedBy)
		s.Equal(s.manager.ID, *view.ApprovedBy)
		s.Equal(s.manager.ID, view.RequestedBy)
	})
}

func (s *BookingCommandsTestSuite) TestCreate_RoomChecks() {
	maintenance := s.createRoom("R-M", room.StatusMaintenance)

	s.Run("unknown room", func() {
		_, err := s.commands.Create(s.ctx, params(uuid.New(), at(8, 0), at(9, 0)), s.member)
		s.assertKind(err, errs.ErrNotFound, room.ErrNotFound.Error())
	})

	s.Run("room not available", func() {
		_, err := s.commands.Create(s.ctx, params(maintenance, at(8, 0), at(9, 0)), s.member)
		s.assertKind(err, errs.ErrConflict, booking.ErrSlotUnavailable.Error())
	})
}

func (s *BookingCommandsTestSuite) TestCreate_Scenario() {
	r1 := s.createRoom("R1", room.StatusAvailable)

	first, err := s.commands.Create(s.ctx, params(r1, at(8, 0), at(9, 0)), s.member)
	s.Require().NoError(err)
	s.False(first.Approved)

	_, err = s.commands.Create(s.ctx, params(r1, at(8, 30), at(9, 30)), s.principal(user.RoleUser))
	s.assertKind(err, errs.ErrConflict, "Room is unavailable or occupied during the requested time slot.")

	_, err = s.commands.Create(s.ctx, params(r1, at(8, 30), at(9, 30)), s.admin)
	s.assertKind(err, errs.ErrConflict, "")

	_, err = s.commands.Create(s.ctx, params(r1, at(9, 0), at(10, 0)), s.member)
	s.Require().NoError(err, "touching boundary must be admitted")

	s.Require().NoError(s.commands.Delete(s.ctx, first.ID))

	_, err = s.bookings.GetByID(s.ctx, first.ID)
	s.assertKind(err, errs.ErrNotFound, "Booking not found.")
}

func (s *BookingCommandsTestSuite) TestCreate_TouchingIntervals() {
	roomID := s.createRoom("R1", room.StatusAvailable)

	_, err := s.commands.Create(s.ctx, params(roomID, at(10, 0), at(11, 0)), s.member)
	s.Require().NoError(err)
	_, err = s.commands.Create(s.ctx, params(roomID, at(11, 0), at(12, 0)), s.member)
	s.Require().NoError(err)
	_, err = s.commands.Create(s.ctx, params(roomID, at(9, 0), at(10, 0)), s.member)
	s.Require().NoError(err)

	_, err = s.commands.Create(s.ctx, params(roomID, at(10, 59), at(11, 1)), s.member)
	s.assertKind(err, errs.ErrConflict, "")
}

func (s *BookingCommandsTestSuite) TestCreate_OtherRoomsDoNotConflict() {
	r1 := s.createRoom("R1", room.StatusAvailable)
	r2 := s.createRoom("R2", room.StatusAvailable)

	_, err := s.commands.Create(s.ctx, params(r1, at(10, 0), at(11, 0)), s.member)
	s.Require().NoError(err)
	_, err = s.commands.Create(s.ctx, params(r2, at(10, 0), at(11, 0)), s.member)
	s.Require().NoError(err)
}

func (s *BookingCommandsTestSuite) TestCreate_ConcurrentRequestsAdmitOne() {
	roomID := s.createRoom("R1", room.StatusAvailable)
	const n = 32

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	requesters := make([]user.Principal, n)
	for i := range requesters {
		requesters[i] = s.principal(user.RoleUser)
	}

	start := make(chan struct{})
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			// every request intersects [10:00, 11:00)
			offset := time.Duration(i%4) * 10 * time.Minute
			_, err := s.commands.Create(s.ctx, params(roomID, at(10, 0).Add(offset), at(11, 0)), requesters[i])

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errs.Is(err, errs.ErrConflict):
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(n-1, conflicts)

	page, err := s.bookings.ListByRoom(s.ctx, roomID, queries.PageRequest{})
	s.Require().NoError(err)
	s.EqualValues(1, page.TotalItems)
}

// ================================================================================
// Update
// ================================================================================

func (s *BookingCommandsTestSuite) TestUpdate() {
	roomID := s.createRoom("R1", room.StatusAvailable)
	first, err := s.commands.Create(s.ctx, params(roomID, at(10, 0), at(11, 0)), s.member)
	s.Require().NoError(err)
	second, err := s.commands.Create(s.ctx, params(roomID, at(12, 0), at(13, 0)), s.member)
	s.Require().NoError(err)

	s.Run("unchanged interval does not conflict with itself", func() {
		start, end := at(10, 0), at(11, 0)
		view, err := s.commands.Update(s.ctx, first.ID, commands.UpdateBookingParams{StartTime: &start, EndTime: &end})
		s.Require().NoError(err)
		s.Equal(start, view.StartTime)
		s.Equal(end, view.EndTime)
	})

	s.Run("nil fields keep the current bound", func() {
		s.clock.Add(time.Minute)
		end := at(11, 30)
		view, err := s.commands.Update(s.ctx, first.ID, commands.UpdateBookingParams{EndTime: &end})
		s.Require().NoError(err)
		s.Equal(at(10, 0), view.StartTime)
		s.Equal(end, view.EndTime)
		s.Equal(s.clock.Now(), view.UpdatedAt)
		s.Equal(first.CreatedAt, view.CreatedAt)
	})

	s.Run("moving onto another booking conflicts", func() {
		end := at(12, 30)
		_, err := s.commands.Update(s.ctx, first.ID, commands.UpdateBookingParams{EndTime: &end})
		s.assertKind(err, errs.ErrConflict, booking.ErrSlotUnavailable.Error())
	})

	s.Run("effective interval must stay ordered", func() {
		start := at(13, 30)
		_, err := s.commands.Update(s.ctx, second.ID, commands.UpdateBookingParams{StartTime: &start})
		s.assertKind(err, errs.ErrInvalidRequest, "startTime must be before endTime.")
	})

	s.Run("past start is allowed on update", func() {
		start := at(6, 0)
		end := at(7, 0)
		_, err := s.commands.Update(s.ctx, second.ID, commands.UpdateBookingParams{StartTime: &start, EndTime: &end})
		s.Require().NoError(err)
	})

	s.Run("approval state is untouched", func() {
		_, err := s.commands.Approve(s.ctx, first.ID, s.manager)
		s.Require().NoError(err)
		start := at(14, 0)
		end := at(15, 0)
		view, err := s.commands.Update(s.ctx, first.ID, commands.UpdateBookingParams{StartTime: &start, EndTime: &end})
		s.Require().NoError(err)
		s.True(view.Approved)
		s.Require().NotNil(view.ApprovedBy)
		s.Equal(s.manager.ID, *view.ApprovedBy)
	})

	s.Run("unknown booking", func() {
		_, err := s.commands.Update(s.ctx, uuid.New(), commands.UpdateBookingParams{})
		s.assertKind(err, errs.ErrNotFound, "Booking not found.")
	})
}

// ================================================================================
// Approve / Delete
// ================================================================================

func (s *BookingCommandsTestSuite) TestApprove() {
	roomID := s.createRoom("R1", room.StatusAvailable)
	pending, err := s.commands.Create(s.ctx, params(roomID, at(10, 0), at(11, 0)), s.member)
	s.Require().NoError(err)

	s.Run("member cannot approve", func() {
		_, err := s.commands.Approve(s.ctx, pending.ID, s.member)
		s.assertKind(err, errs.ErrForbidden, "")
	})

	s.Run("last approver wins", func() {
		view, err := s.commands.Approve(s.ctx, pending.ID, s.manager)
		s.Require().NoError(err)
		s.True(view.Approved)
		s.Equal(s.manager.ID, *view.ApprovedBy)

		view, err = s.commands.Approve(s.ctx, pending.ID, s.admin)
		s.Require().NoError(err)
		s.True(view.Approved)
		s.Equal(s.admin.ID, *view.ApprovedBy)
		s.Equal(booking.StatusApproved.String(), view.Status)
	})

	s.Run("unknown booking", func() {
		_, err := s.commands.Approve(s.ctx, uuid.New(), s.manager)
		s.assertKind(err, errs.ErrNotFound, "Booking not found.")
	})
}

func (s *BookingCommandsTestSuite) TestDelete() {
	roomID := s.createRoom("R1", room.StatusAvailable)
	view, err := s.commands.Create(s.ctx, params(roomID, at(10, 0), at(11, 0)), s.member)
	s.Require().NoError(err)

	s.Require().NoError(s.commands.Delete(s.ctx, view.ID))

	err = s.commands.Delete(s.ctx, view.ID)
	s.assertKind(err, errs.ErrNotFound, "Booking not found.")

	_, err = s.commands.Create(s.ctx, params(roomID, at(10, 0), at(11, 0)), s.member)
	s.Require().NoError(err, "slot is free again")
}
