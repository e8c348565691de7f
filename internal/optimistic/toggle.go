// Package optimistic implements the local-state discipline shared by the
// upvote, bookmark and comment controls: apply the change immediately,
// confirm it against the store, and roll back to the last known-good state
// when the write fails.
package optimistic

import (
	"context"
	"errors"
	"sync"
)

// ErrInFlight is returned when a mutation is refused because a previous one
// on the same control has not resolved yet. The commit function is not
// invoked in that case.
var ErrInFlight = errors.New("optimistic: mutation already in flight")

type ToggleState int

const (
	Off ToggleState = iota
	On
	InFlightToOn
	InFlightToOff
)

// CommitToggle performs the backend write for one accepted flip. turningOn
// selects insert vs delete; the direction is derived from the control state,
// never from the request, so toggling on when already on is unreachable.
type CommitToggle func(ctx context.Context, turningOn bool) error

// Toggle models membership in a per-(user, entry) relation together with an
// optimistic local copy of the displayed aggregate count. Controls that have
// no visible count (bookmarks) simply seed it with zero and ignore it.
type Toggle struct {
	mu    sync.Mutex
	state ToggleState
	count int
}

// NewToggle seeds a control from store-known state at load time.
func NewToggle(on bool, count int) *Toggle {
	t := &Toggle{count: count}
	if on {
		t.state = On
	}
	return t
}

func (t *Toggle) State() ToggleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// On reports the boolean as it should render right now; an in-flight target
// counts as already reached.
func (t *Toggle) On() bool {
	on, _ := t.Snapshot()
	return on
}

func (t *Toggle) Count() int {
	_, count := t.Snapshot()
	return count
}

// Snapshot returns boolean and count under one lock, so a render never
// observes one rolled back without the other.
func (t *Toggle) Snapshot() (on bool, count int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == On || t.state == InFlightToOn, t.count
}

// Flip applies the toggle optimistically, invokes commit, and settles or
// rolls back depending on the outcome:
//
//	Off -> InFlightToOn  -> On   (success)
//	Off -> InFlightToOn  -> Off  (failure, count restored)
//	On  -> InFlightToOff -> Off  (success)
//	On  -> InFlightToOff -> On   (failure, count restored)
//
// While a flip is in flight further calls return ErrInFlight without
// touching state or issuing a write.
func (t *Toggle) Flip(ctx context.Context, commit CommitToggle) error {
	t.mu.Lock()
	if t.state == InFlightToOn || t.state == InFlightToOff {
		t.mu.Unlock()
		return ErrInFlight
	}
	turningOn := t.state == Off
	if turningOn {
		t.state = InFlightToOn
		t.count++
	} else {
		t.state = InFlightToOff
		t.count--
	}
	t.mu.Unlock()

	err := commit(ctx, turningOn)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		if turningOn {
			t.state = Off
			t.count--
		} else {
			t.state = On
			t.count++
		}
		return err
	}
	if turningOn {
		t.state = On
	} else {
		t.state = Off
	}
	return nil
}
