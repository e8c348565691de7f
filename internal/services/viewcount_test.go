package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestViewCounterAggregatesPerPlatform(t *testing.T) {
	var got map[uint]int
	vc := newViewCounter(func(counts map[uint]int) error {
		got = counts
		return nil
	}, time.Second)

	vc.Record(1)
	vc.Record(2)
	vc.Record(1)
	vc.Record(1)
	vc.flushPending()

	assert.Equal(t, map[uint]int{1: 3, 2: 1}, got)

	// Nothing pending after a flush.
	got = nil
	vc.flushPending()
	assert.Nil(t, got)
}

func TestViewCounterSwallowsFlushErrors(t *testing.T) {
	calls := 0
	vc := newViewCounter(func(counts map[uint]int) error {
		calls++
		return errors.New("db down")
	}, time.Second)

	vc.Record(7)
	vc.flushPending() // must not panic; error is logged and dropped

	// The failed batch is not retried.
	vc.flushPending()
	assert.Equal(t, 1, calls)
}
