package domain

import (
	"strings"
	"time"
)

// StatusDelivered is the only terminal order state that is kept during ingestion.
const StatusDelivered = "delivered"

// OrderRecord is one completed delivery, normalized from the remote order history.
// Field names match the stored document layout.
type OrderRecord struct {
	OrderID        string  `json:"order_id" bson:"order_id"`
	TotalPrice     float64 `json:"total_price" bson:"total_price"`
	Currency       string  `json:"currency" bson:"currency"`
	Latitude       float64 `json:"latitude" bson:"latitude"`
	Longitude      float64 `json:"longitude" bson:"longitude"`
	VenueName      string  `json:"venue_name" bson:"venue_name"`
	VenueNameFixed string  `json:"venue_name_fixed" bson:"venue_name_fixed"`
	VenueTimezone  string  `json:"venue_timezone" bson:"venue_timezone"`
	DeliveryTime   int64   `json:"delivery_time" bson:"delivery_time"` // epoch milliseconds
	YearMonth      string  `json:"year-month" bson:"year-month"`
}

// DeliveredAt returns the delivery timestamp as a time.Time in UTC.
func (o OrderRecord) DeliveredAt() time.Time {
	return time.UnixMilli(o.DeliveryTime).UTC()
}

// ItemRecord is one line item of an OrderRecord.
type ItemRecord struct {
	OrderID        string  `json:"order_id" bson:"order_id"`
	ItemID         string  `json:"item_id" bson:"item_id"`
	Name           string  `json:"name" bson:"name"`
	Price          float64 `json:"price" bson:"price"`
	Currency       string  `json:"currency" bson:"currency"`
	VenueNameFixed string  `json:"venue_name_fixed" bson:"venue_name_fixed"`
	Count          int     `json:"count" bson:"count"`
}

// UserSnapshot is the persisted unit: the complete trailing-window history of one
// pseudonymous user. It is always written as a whole.
type UserSnapshot struct {
	UserID    string        `json:"userid" bson:"_id"`
	Orders    []OrderRecord `json:"orders" bson:"orders"`
	Items     []ItemRecord  `json:"items" bson:"items"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// Empty reports whether the snapshot carries no orders.
func (s *UserSnapshot) Empty() bool {
	return s == nil || len(s.Orders) == 0
}

// Deduplicated returns a copy with orders unique by OrderID and items unique by
// ItemID. The first occurrence wins and relative order is preserved.
func (s *UserSnapshot) Deduplicated() *UserSnapshot {
	out := &UserSnapshot{
		UserID:    s.UserID,
		UpdatedAt: s.UpdatedAt,
		Orders:    make([]OrderRecord, 0, len(s.Orders)),
		Items:     make([]ItemRecord, 0, len(s.Items)),
	}

	seenOrders := make(map[string]struct{}, len(s.Orders))
	for _, o := range s.Orders {
		if _, ok := seenOrders[o.OrderID]; ok {
			continue
		}
		seenOrders[o.OrderID] = struct{}{}
		out.Orders = append(out.Orders, o)
	}

	seenItems := make(map[string]struct{}, len(s.Items))
	for _, it := range s.Items {
		if _, ok := seenItems[it.ItemID]; ok {
			continue
		}
		seenItems[it.ItemID] = struct{}{}
		out.Items = append(out.Items, it)
	}

	return out
}

// FixVenueName strips the branch qualifier from a venue display name:
// "Pizza Place | Downtown" becomes "Pizza Place".
func FixVenueName(name string) string {
	before, _, _ := strings.Cut(name, "|")
	return strings.TrimSpace(before)
}
