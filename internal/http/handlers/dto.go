package handlers

import "gofo-dispatch/internal/service/dispatch"

type driverRequest struct {
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location"`
	ShiftWindow string `json:"shift_window"`
}

func (r driverRequest) toSpec() dispatch.DriverSpec {
	return dispatch.DriverSpec{
		Name:        r.Name,
		Capacity:    r.Capacity,
		Location:    r.Location,
		ShiftWindow: r.ShiftWindow,
	}
}

type orderRequest struct {
	Pickup      string `json:"pickup"`
	Destination string `json:"destination"`
	Weight      int    `json:"weight"`
	Volume      int    `json:"volume"`
	Contact     string `json:"contact"`
	Priority    string `json:"priority"`
	TimeWindow  string `json:"time_window"`
}

func (r orderRequest) toSpec() dispatch.OrderSpec {
	return dispatch.OrderSpec{
		Pickup:      r.Pickup,
		Destination: r.Destination,
		Weight:      r.Weight,
		Volume:      r.Volume,
		Contact:     r.Contact,
		Priority:    r.Priority,
		TimeWindow:  r.TimeWindow,
	}
}

type assignRequest struct {
	Strategy string `json:"strategy"`
}

type pairRequest struct {
	DriverID string `json:"driver_id"`
	OrderID  string `json:"order_id"`
}

type generateRequest struct {
	Drivers int `json:"drivers"`
	Orders  int `json:"orders"`
}
