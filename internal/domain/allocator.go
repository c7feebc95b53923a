package domain

import (
	"strconv"
	"strings"
)

// seatRangeSlack is how far past the highest occupied seat a requested
// number may go before it is treated as out of range. Vehicles with
// unset or zero capacity still accept reasonable seat numbers this way.
const seatRangeSlack = 100

// ParseSeat converts a submitted seat value into a seat number.
// An empty value means auto-assign.
func ParseSeat(raw string) (seat int, requested bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	n, convErr := strconv.Atoi(raw)
	if convErr != nil || n <= 0 {
		return 0, false, ErrInvalidSeat
	}
	return n, true, nil
}

// AllocateSeat decides which seat a new booking receives on a trip.
// The caller must hold the trip row lock and must have read occupied
// under that same lock. The function never mutates state; the caller
// applies the decision atomically.
func AllocateSeat(capacity, available int, occupied map[int]bool, seat int, requested bool) (int, error) {
	if available <= 0 {
		return 0, ErrNoSeatsAvailable
	}

	if requested {
		if seat <= 0 {
			return 0, ErrInvalidSeat
		}
		if capacity > 0 && seat > capacity && seat > maxOccupied(occupied)+seatRangeSlack {
			return 0, ErrSeatOutOfRange
		}
		if occupied[seat] {
			return 0, ErrSeatTaken
		}
		return seat, nil
	}

	for n := 1; n <= capacity; n++ {
		if !occupied[n] {
			return n, nil
		}
	}
	// available > 0 yet no gap within capacity: hand out the next number up.
	return maxOccupied(occupied) + 1, nil
}

func maxOccupied(occupied map[int]bool) int {
	max := 0
	for n := range occupied {
		if n > max {
			max = n
		}
	}
	return max
}
