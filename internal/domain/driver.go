package domain

// DriverStatus represents the availability of a driver.
type DriverStatus string

// List of possible driver statuses
const (
	DriverIdle     DriverStatus = "idle"
	DriverAssigned DriverStatus = "assigned"
	DriverBusy     DriverStatus = "busy"
)

var allowedDriverStatuses = [...]DriverStatus{
	DriverIdle, DriverAssigned, DriverBusy,
}

// Valid checks if the DriverStatus is valid
func (s DriverStatus) Valid() bool {
	for _, v := range allowedDriverStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Driver represents a fleet driver based at the hub.
type Driver struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Capacity    int          `json:"capacity"`
	Status      DriverStatus `json:"status"`
	Location    Location     `json:"location"`
	ShiftWindow string       `json:"shift_window"`
}

// DriverPatch carries optional fields to update a driver.
// A nil field means "do not change" that attribute.
type DriverPatch struct {
	Name        *string       `json:"name,omitempty"`
	Capacity    *int          `json:"capacity,omitempty"`
	Status      *DriverStatus `json:"status,omitempty"`
	Location    *Location     `json:"location,omitempty"`
	ShiftWindow *string       `json:"shift_window,omitempty"`
}
