package request

import (
	"errors"
	"slices"

	"room-booking/internal/domain/room"
	"room-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var errValidatorEngine = errors.New("gin binding validator is not go-playground/validator")

// RegisterValidators installs the custom tags used by the request DTOs on
// gin's binding validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errValidatorEngine
	}

	validations := map[string]validator.Func{
		"roomstatus": validateRoomStatus,
		"roomtype":   validateRoomType,
		"sortspec":   validateSortSpec,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func validateRoomStatus(fl validator.FieldLevel) bool {
	return room.Status(fl.Field().String()).IsValid()
}

func validateRoomType(fl validator.FieldLevel) bool {
	return room.Type(fl.Field().String()).IsValid()
}

// validateSortSpec accepts "field" or "field,asc|desc". Whether the field is
// sortable is decided by the query service.
func validateSortSpec(fl validator.FieldLevel) bool {
	field, dir := queries.ParseSort(fl.Field().String())
	if field == "" {
		return false
	}
	return dir == "" || slices.Contains([]queries.SortDirection{queries.SortAsc, queries.SortDesc}, dir)
}
