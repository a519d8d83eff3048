//go:build unit

package uow

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"room-booking/internal/infra"
	"room-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: pgErrCodeSerializationFailure}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: pgErrCodeDeadlockDetected}, want: true},
		{name: "wrapped by repository and engine", err: errs.DatabaseFailure(infra.WrapRepoErr("lock room", &pgconn.PgError{Code: pgErrCodeDeadlockDetected})), want: true},
		{name: "exclusion violation", err: &pgconn.PgError{Code: "23P01"}, want: false},
		{name: "domain error", err: errs.Conflict(errors.New("taken")), want: false},
		{name: "plain error", err: fmt.Errorf("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestBackoff(t *testing.T) {
	base := 100 * time.Millisecond

	for attempt := range 4 {
		want := time.Duration(1<<attempt) * base
		got := backoff(attempt, base)
		assert.GreaterOrEqual(t, got, want)
		assert.Less(t, got, want+want/5+time.Nanosecond)
	}
}
