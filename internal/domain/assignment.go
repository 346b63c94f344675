package domain

// AssignmentMap maps order ids to their delivery day. Unassigned orders are absent.
// Values are immutable: Assign returns a new map and leaves the receiver untouched.
type AssignmentMap struct {
	days map[string]DeliveryDay
}

// NewAssignmentMap returns an empty assignment map
func NewAssignmentMap() AssignmentMap {
	return AssignmentMap{days: map[string]DeliveryDay{}}
}

// Assign sets the delivery day of an order, replacing any previous assignment.
// The order must exist in the store and the day must be one of the five canonical days.
func (m AssignmentMap) Assign(store *OrderStore, orderID string, day DeliveryDay) (AssignmentMap, error) {
	if !day.IsValid() {
		return m, ErrInvalidDeliveryDay
	}
	if _, ok := store.ByID(orderID); !ok {
		return m, ErrUnknownOrder
	}

	next := make(map[string]DeliveryDay, len(m.days)+1)
	for id, d := range m.days {
		next[id] = d
	}
	next[orderID] = day
	return AssignmentMap{days: next}, nil
}

// Get returns the delivery day of an order and whether it is assigned
func (m AssignmentMap) Get(orderID string) (DeliveryDay, bool) {
	day, ok := m.days[orderID]
	return day, ok
}

// Len returns the number of assigned orders
func (m AssignmentMap) Len() int {
	return len(m.days)
}

// OrdersForDay returns the store's orders currently assigned to day, in store order.
// Both report algorithms select their orders through this function.
func (m AssignmentMap) OrdersForDay(store *OrderStore, day DeliveryDay) []Order {
	selected := make([]Order, 0)
	for _, order := range store.All() {
		if assigned, ok := m.days[order.ID]; ok && assigned == day {
			selected = append(selected, order)
		}
	}
	return selected
}

// CountByDay returns the number of assigned orders per day, with every canonical day present
func (m AssignmentMap) CountByDay() map[DeliveryDay]int {
	counts := make(map[DeliveryDay]int, len(deliveryDayLabels))
	for _, day := range DeliveryDays() {
		counts[day] = 0
	}
	for _, day := range m.days {
		counts[day]++
	}
	return counts
}
