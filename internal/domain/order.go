package domain

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

// List of possible order statuses
const (
	OrderPending   OrderStatus = "pending"
	OrderAssigned  OrderStatus = "assigned"
	OrderCompleted OrderStatus = "completed"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderPending, OrderAssigned, OrderCompleted,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Priority orders the urgency of an order: normal < high < urgent.
type Priority string

// List of possible order priorities
const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank returns the numeric rank used to sort orders before matching.
// Unknown priorities rank as normal.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	default:
		return 1
	}
}

// Valid checks if the Priority is valid
func (p Priority) Valid() bool {
	switch p {
	case PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Order represents a pickup/delivery order.
type Order struct {
	ID          string      `json:"id"`
	Pickup      Location    `json:"pickup"`
	Destination Location    `json:"destination"`
	Weight      int         `json:"weight"`
	Volume      int         `json:"volume"`
	Contact     string      `json:"contact"`
	Priority    Priority    `json:"priority"`
	TimeWindow  string      `json:"time_window"`
	Status      OrderStatus `json:"status"`
}

// OrderPatch carries optional fields to update an order.
// A nil field means "do not change" that attribute.
type OrderPatch struct {
	Pickup      *Location    `json:"pickup,omitempty"`
	Destination *Location    `json:"destination,omitempty"`
	Weight      *int         `json:"weight,omitempty"`
	Volume      *int         `json:"volume,omitempty"`
	Contact     *string      `json:"contact,omitempty"`
	Priority    *Priority    `json:"priority,omitempty"`
	TimeWindow  *string      `json:"time_window,omitempty"`
	Status      *OrderStatus `json:"status,omitempty"`
}
