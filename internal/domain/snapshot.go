package domain

// Snapshot is a value copy of the three store collections at a point in time.
// All element types are plain values, so copying the slices is a deep copy.
type Snapshot struct {
	Drivers     []Driver     `json:"drivers"`
	Orders      []Order      `json:"orders"`
	Assignments []Assignment `json:"assignments"`
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Drivers:     append([]Driver(nil), s.Drivers...),
		Orders:      append([]Order(nil), s.Orders...),
		Assignments: append([]Assignment(nil), s.Assignments...),
	}
}

// FindDriver returns the driver with the given id, if present.
func (s Snapshot) FindDriver(id string) (Driver, bool) {
	for _, d := range s.Drivers {
		if d.ID == id {
			return d, true
		}
	}
	return Driver{}, false
}

// FindOrder returns the order with the given id, if present.
func (s Snapshot) FindOrder(id string) (Order, bool) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}
