package kafka

import (
	"strings"

	"gofo-dispatch/internal/service/dispatch"
)

// OrderDTO is the wire shape of an incoming order message.
type OrderDTO struct {
	Pickup      string `json:"pickup"`
	Destination string `json:"destination"`
	Weight      int    `json:"weight"`
	Volume      int    `json:"volume"`
	Contact     string `json:"contact"`
	Priority    string `json:"priority"`
	TimeWindow  string `json:"time_window"`
}

// ToSpec converts OrderDTO to a dispatch.OrderSpec.
func ToSpec(dto OrderDTO) dispatch.OrderSpec {
	return dispatch.OrderSpec{
		Pickup:      strings.TrimSpace(dto.Pickup),
		Destination: strings.TrimSpace(dto.Destination),
		Weight:      dto.Weight,
		Volume:      dto.Volume,
		Contact:     strings.TrimSpace(dto.Contact),
		Priority:    strings.TrimSpace(dto.Priority),
		TimeWindow:  strings.TrimSpace(dto.TimeWindow),
	}
}
