package request

import (
	"encoding/json"
	"time"

	"room-booking/internal/usecase/commands"
	"room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// CreateBookingRequest leaves presence checks to the admission engine so the
// client gets its field-specific messages.
type CreateBookingRequest struct {
	RoomID    *uuid.UUID `json:"roomId"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}

// UnmarshalJSON decodes field by field so a malformed value is reported under
// its own name.
func (r *CreateBookingRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		RoomID    json.RawMessage `json:"roomId"`
		StartTime json.RawMessage `json:"startTime"`
		EndTime   json.RawMessage `json:"endTime"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	if r.RoomID, err = decodeField[uuid.UUID]("roomId", raw.RoomID); err != nil {
		return err
	}
	if r.StartTime, err = decodeField[time.Time]("startTime", raw.StartTime); err != nil {
		return err
	}
	r.EndTime, err = decodeField[time.Time]("endTime", raw.EndTime)
	return err
}

func (r CreateBookingRequest) ToParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		RoomID:    r.RoomID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

type UpdateBookingRequest struct {
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}

func (r *UpdateBookingRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		StartTime json.RawMessage `json:"startTime"`
		EndTime   json.RawMessage `json:"endTime"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	if r.StartTime, err = decodeField[time.Time]("startTime", raw.StartTime); err != nil {
		return err
	}
	r.EndTime, err = decodeField[time.Time]("endTime", raw.EndTime)
	return err
}

func (r UpdateBookingRequest) ToParams() commands.UpdateBookingParams {
	return commands.UpdateBookingParams{
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

type BookingFilterQuery struct {
	RoomID       string `form:"roomId" binding:"omitempty,uuid"`
	RequestedBy  string `form:"requestedBy" binding:"omitempty,uuid"`
	ApprovedBy   string `form:"approvedBy" binding:"omitempty,uuid"`
	MinStartTime string `form:"minStartTime" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	MaxEndTime   string `form:"maxEndTime" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// ToFilter assumes the binding tags already accepted every value.
func (q BookingFilterQuery) ToFilter() queries.BookingFilter {
	return queries.BookingFilter{
		RoomID:       optionalUUID(q.RoomID),
		RequestedBy:  optionalUUID(q.RequestedBy),
		ApprovedBy:   optionalUUID(q.ApprovedBy),
		MinStartTime: optionalTime(q.MinStartTime),
		MaxEndTime:   optionalTime(q.MaxEndTime),
	}
}

func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func optionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
