package domain

import "time"

type Route struct {
	ID          int64
	Name        string
	Code        string
	Description string
	Active      bool
}

type Stop struct {
	ID       int64
	Name     string
	Code     string
	Location string
	RouteID  int64
}

type Timetable struct {
	ID            int64
	RouteID       int64
	StopID        int64
	ArrivalTime   time.Time
	DepartureTime time.Time
}
