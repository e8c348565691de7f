package optimistic

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleDoubleFlipReturnsToOriginal(t *testing.T) {
	tog := NewToggle(false, 5)
	commit := func(ctx context.Context, turningOn bool) error { return nil }

	require.NoError(t, tog.Flip(context.Background(), commit))
	on, count := tog.Snapshot()
	assert.True(t, on)
	assert.Equal(t, 6, count)

	require.NoError(t, tog.Flip(context.Background(), commit))
	on, count = tog.Snapshot()
	assert.False(t, on)
	assert.Equal(t, 5, count)
}

func TestToggleOptimisticStateVisibleDuringCommit(t *testing.T) {
	tog := NewToggle(false, 5)

	err := tog.Flip(context.Background(), func(ctx context.Context, turningOn bool) error {
		// The flip is already applied while the write is outstanding.
		on, count := tog.Snapshot()
		assert.True(t, on)
		assert.Equal(t, 6, count)
		assert.Equal(t, InFlightToOn, tog.State())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, On, tog.State())
	assert.Equal(t, 6, tog.Count())
}

func TestToggleRollbackOnFailure(t *testing.T) {
	boom := errors.New("backend rejected write")

	tog := NewToggle(false, 5)
	err := tog.Flip(context.Background(), func(ctx context.Context, turningOn bool) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	on, count := tog.Snapshot()
	assert.False(t, on, "boolean must revert to pre-attempt value")
	assert.Equal(t, 5, count, "count must revert to pre-attempt value")
	assert.Equal(t, Off, tog.State())

	// Same contract in the other direction.
	tog = NewToggle(true, 9)
	err = tog.Flip(context.Background(), func(ctx context.Context, turningOn bool) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	on, count = tog.Snapshot()
	assert.True(t, on)
	assert.Equal(t, 9, count)
}

func TestToggleDirectionFollowsState(t *testing.T) {
	var directions []bool
	commit := func(ctx context.Context, turningOn bool) error {
		directions = append(directions, turningOn)
		return nil
	}

	tog := NewToggle(true, 3)
	require.NoError(t, tog.Flip(context.Background(), commit))
	require.NoError(t, tog.Flip(context.Background(), commit))
	assert.Equal(t, []bool{false, true}, directions)
}

func TestToggleInFlightGuard(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	commits := 0

	tog := NewToggle(false, 0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = tog.Flip(context.Background(), func(ctx context.Context, turningOn bool) error {
			commits++
			close(entered)
			<-release
			return nil
		})
	}()

	<-entered
	// Second invocation while the first is outstanding: refused, no write.
	err := tog.Flip(context.Background(), func(ctx context.Context, turningOn bool) error {
		commits++
		return nil
	})
	assert.ErrorIs(t, err, ErrInFlight)

	close(release)
	wg.Wait()
	assert.Equal(t, 1, commits)
	assert.True(t, tog.On())
}

func TestToggleUpvoteScenario(t *testing.T) {
	// Entry with count 5, user not yet upvoted.
	t.Run("success keeps optimistic state", func(t *testing.T) {
		tog := NewToggle(false, 5)
		require.NoError(t, tog.Flip(context.Background(), func(ctx context.Context, turningOn bool) error {
			assert.True(t, turningOn)
			return nil
		}))
		on, count := tog.Snapshot()
		assert.True(t, on)
		assert.Equal(t, 6, count)
	})

	t.Run("failure reverts to 5/off", func(t *testing.T) {
		tog := NewToggle(false, 5)
		err := tog.Flip(context.Background(), func(ctx context.Context, turningOn bool) error {
			return errors.New("network error")
		})
		require.Error(t, err)
		on, count := tog.Snapshot()
		assert.False(t, on)
		assert.Equal(t, 5, count)
	})
}
