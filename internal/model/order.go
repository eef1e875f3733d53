package model

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// OrderStatus is where an order is in its lifecycle.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []OrderStatus{OrderStatusPlaced, OrderStatusApproved, OrderStatusDelivered}

// Valid reports whether s is one of OrderStatuses.
func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseOrderStatuses parses a comma separated status filter.
func ParseOrderStatuses(csv string) ([]OrderStatus, error) {
	var statuses []OrderStatus
	for _, value := range SplitCSV(csv) {
		status := OrderStatus(strings.ToLower(value))
		if !status.Valid() {
			return nil, fmt.Errorf("unknown order status %q", value)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Order is a purchase order for a pet.
type Order struct {
	XMLName  xml.Name    `json:"-" xml:"Order"`
	ID       int64       `json:"id" xml:"id" validate:"min=0"`
	PetID    int64       `json:"petId" xml:"petId" validate:"min=0"`
	Quantity int32       `json:"quantity" xml:"quantity" validate:"min=0"`
	ShipDate *time.Time  `json:"shipDate,omitempty" xml:"shipDate,omitempty"`
	Status   OrderStatus `json:"status,omitempty" xml:"status,omitempty" validate:"omitempty,oneof=placed approved delivered" jsonschema:"enum=placed,enum=approved,enum=delivered"`
	Complete bool        `json:"complete" xml:"complete"`
}

func (o Order) RecordID() int64 {
	return o.ID
}

// HasStatus reports whether the order's status is one of statuses.
func (o Order) HasStatus(statuses []OrderStatus) bool {
	for _, status := range statuses {
		if o.Status == status {
			return true
		}
	}
	return false
}

// Orders is a list of orders; it encodes to XML as <orders><Order/>...</orders>.
type Orders []Order

func (o Orders) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return encodeList(e, "orders", "Order", o)
}
