package domain

import (
	"errors"
	"strings"
)

// Errors for delivery day handling
var (
	ErrInvalidDeliveryDay = errors.New("invalid delivery day")
	ErrUnknownOrder       = errors.New("order not found in store")
)

// DeliveryDay is one of the five weekdays orders are routed on
type DeliveryDay string

const (
	Sunday    DeliveryDay = "sunday"
	Monday    DeliveryDay = "monday"
	Tuesday   DeliveryDay = "tuesday"
	Wednesday DeliveryDay = "wednesday"
	Thursday  DeliveryDay = "thursday"
)

// DeliveryDays returns the closed set of delivery days in week order
func DeliveryDays() []DeliveryDay {
	return []DeliveryDay{Sunday, Monday, Tuesday, Wednesday, Thursday}
}

var deliveryDayLabels = map[DeliveryDay]string{
	Sunday:    "ראשון",
	Monday:    "שני",
	Tuesday:   "שלישי",
	Wednesday: "רביעי",
	Thursday:  "חמישי",
}

// IsValid checks if the delivery day belongs to the closed set
func (d DeliveryDay) IsValid() bool {
	_, ok := deliveryDayLabels[d]
	return ok
}

// Label returns the operator-facing name of the day, or "" for invalid values
func (d DeliveryDay) Label() string {
	return deliveryDayLabels[d]
}

func (d DeliveryDay) String() string {
	return string(d)
}

// ParseDeliveryDay normalises and validates raw input
func ParseDeliveryDay(raw string) (DeliveryDay, error) {
	day := DeliveryDay(strings.ToLower(strings.TrimSpace(raw)))
	if !day.IsValid() {
		return "", ErrInvalidDeliveryDay
	}
	return day, nil
}
