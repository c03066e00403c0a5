//go:build unit

package errs_test

import (
	"fmt"
	"testing"

	"parkspot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	t.Run("sentinel matches with errors.Is", func(t *testing.T) {
		err := errs.Mark(errs.New("row missing"), errs.ErrBookingNotFound)
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("sentinel survives further wrapping", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(errs.New("no rows"), errs.ErrSpaceNotFound), "find space")
		require.ErrorIs(t, err, errs.ErrSpaceNotFound)
	})

	t.Run("wrapped cause stays matchable", func(t *testing.T) {
		cause := fmt.Errorf("scan: %w", errs.ErrDatabaseOperationFailed)
		err := errs.Mark(cause, errs.ErrBookingNotFound)
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
		require.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	})

	t.Run("message is the cause's alone", func(t *testing.T) {
		err := errs.Mark(errs.New("row missing"), errs.ErrBookingNotFound)
		assert.Equal(t, "row missing", err.Error())
	})

	t.Run("nil cause yields the sentinel itself", func(t *testing.T) {
		err := errs.Mark(nil, errs.ErrForbidden)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}
