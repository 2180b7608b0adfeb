package gateway

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/lock"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLockGW(t *testing.T) (*LockGW, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	manager := lock.NewManager(client, models.LockConfig{
		Prefix:     "finance:lock:",
		Expiry:     30 * time.Second,
		Tries:      2,
		RetryDelay: 5 * time.Millisecond,
	}, nil)
	return NewLockGW(manager), mr
}

func TestLockGW_WithLock(t *testing.T) {
	testCases := []struct {
		name       string
		held       bool
		fnErr      error
		wantStatus int
		wantRan    bool
	}{
		{
			name:    "runs function under lock",
			wantRan: true,
		},
		{
			name:       "function error is returned unchanged",
			fnErr:      apperror.BadRequest(apperror.CodeAllAlreadyProcessed),
			wantStatus: http.StatusBadRequest,
			wantRan:    true,
		},
		{
			name:       "held lock is an internal error",
			held:       true,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			gw, mr := newLockGW(t)
			if tc.held {
				require.NoError(t, mr.Set("finance:lock:diku:encumbrances:order-1", "other"))
			}
			ran := false

			// Act
			err := gw.WithLock(context.Background(), "diku:encumbrances:order-1", func(ctx context.Context) error {
				ran = true
				return tc.fnErr
			})

			// Assert
			assert.Equal(t, tc.wantRan, ran)
			if tc.wantStatus == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.wantStatus, apperror.StatusOf(err))
			if tc.fnErr != nil {
				assert.True(t, errors.Is(err, tc.fnErr))
			}
		})
	}
}
