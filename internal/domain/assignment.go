package domain

import "time"

// AssignmentStatus represents the lifecycle state of an assignment.
type AssignmentStatus string

// List of possible assignment statuses
const (
	AssignmentActive    AssignmentStatus = "assigned"
	AssignmentCompleted AssignmentStatus = "completed"
)

// Assignment pairs a driver with an order. It references both by id and owns
// neither; the store keeps the (driver, order) pair unique among active
// assignments.
type Assignment struct {
	ID               string           `json:"id"`
	DriverID         string           `json:"driver_id"`
	OrderID          string           `json:"order_id"`
	EstimatedMinutes int              `json:"estimated_time"`
	Status           AssignmentStatus `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Active reports whether the assignment still binds its driver and order.
func (a Assignment) Active() bool {
	return a.Status != AssignmentCompleted
}
