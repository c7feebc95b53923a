package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeat(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		seat      int
		requested bool
		err       error
	}{
		{name: "empty means auto-assign", raw: "", requested: false},
		{name: "whitespace means auto-assign", raw: "   ", requested: false},
		{name: "plain number", raw: "12", seat: 12, requested: true},
		{name: "padded number", raw: " 7 ", seat: 7, requested: true},
		{name: "not a number", raw: "abc", err: ErrInvalidSeat},
		{name: "zero", raw: "0", err: ErrInvalidSeat},
		{name: "negative", raw: "-3", err: ErrInvalidSeat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seat, requested, err := ParseSeat(tc.raw)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.seat, seat)
			assert.Equal(t, tc.requested, requested)
		})
	}
}

func TestAllocateSeat_AutoAssign(t *testing.T) {
	occupied := map[int]bool{1: true, 2: true, 4: true}

	seat, err := AllocateSeat(5, 2, occupied, 0, false)
	assert.NoError(t, err)
	assert.Equal(t, 3, seat, "lowest free seat wins")
}

func TestAllocateSeat_AutoAssignEmptyTrip(t *testing.T) {
	seat, err := AllocateSeat(2, 2, map[int]bool{}, 0, false)
	assert.NoError(t, err)
	assert.Equal(t, 1, seat)
}

func TestAllocateSeat_AutoAssignFallbackPastCapacity(t *testing.T) {
	// Counter says a seat is free but 1..capacity is fully occupied.
	occupied := map[int]bool{1: true, 2: true, 3: true}

	seat, err := AllocateSeat(3, 1, occupied, 0, false)
	assert.NoError(t, err)
	assert.Equal(t, 4, seat)
}

func TestAllocateSeat_AutoAssignZeroCapacityFallback(t *testing.T) {
	seat, err := AllocateSeat(0, 1, map[int]bool{}, 0, false)
	assert.NoError(t, err)
	assert.Equal(t, 1, seat)
}

func TestAllocateSeat_NoSeatsAvailable(t *testing.T) {
	_, err := AllocateSeat(2, 0, map[int]bool{1: true, 2: true}, 1, true)
	assert.ErrorIs(t, err, ErrNoSeatsAvailable)

	_, err = AllocateSeat(2, -1, map[int]bool{}, 0, false)
	assert.ErrorIs(t, err, ErrNoSeatsAvailable)
}

func TestAllocateSeat_Requested(t *testing.T) {
	testCases := []struct {
		name     string
		capacity int
		occupied map[int]bool
		seat     int
		want     int
		err      error
	}{
		{name: "free seat granted", capacity: 50, occupied: map[int]bool{5: true}, seat: 7, want: 7},
		{name: "taken seat rejected", capacity: 50, occupied: map[int]bool{5: true}, seat: 5, err: ErrSeatTaken},
		{name: "way past capacity rejected", capacity: 50, occupied: map[int]bool{5: true}, seat: 200, err: ErrSeatOutOfRange},
		{name: "past capacity within slack tolerated", capacity: 50, occupied: map[int]bool{5: true}, seat: 60, want: 60},
		{name: "no capacity known tolerated", capacity: 0, occupied: map[int]bool{}, seat: 42, want: 42},
		{name: "slack grows with highest occupied seat", capacity: 50, occupied: map[int]bool{180: true}, seat: 220, want: 220},
		{name: "empty ledger slack is 100", capacity: 50, occupied: map[int]bool{}, seat: 101, err: ErrSeatOutOfRange},
		{name: "seat 100 on empty ledger tolerated", capacity: 50, occupied: map[int]bool{}, seat: 100, want: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seat, err := AllocateSeat(tc.capacity, 10, tc.occupied, tc.seat, true)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, seat)
		})
	}
}
