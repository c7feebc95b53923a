package domain

type VehicleType string

const (
	VehicleTypeBus   VehicleType = "bus"
	VehicleTypeTrain VehicleType = "train"
)

type Vehicle struct {
	ID       int64
	Code     string
	Type     VehicleType
	Capacity int
	Active   bool
	RouteIDs []int64
}
