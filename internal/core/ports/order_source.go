package ports

import "context"

// RemoteOrder is the wire shape of one entry in the remote order-history page.
type RemoteOrder struct {
	OrderID          string       `json:"order_id"`
	Status           string       `json:"status"`
	TotalPrice       float64      `json:"total_price"`
	TotalPriceShare  float64      `json:"total_price_share"`
	Currency         string       `json:"currency"`
	VenueCoordinates []float64    `json:"venue_coordinates"` // [longitude, latitude]
	VenueName        string       `json:"venue_name"`
	VenueTimezone    string       `json:"venue_timezone"`
	DeliveryTime     RemoteDate   `json:"delivery_time"`
	Items            []RemoteItem `json:"items"`
}

// RemoteDate is the extended-JSON date wrapper {"$date": <epoch ms>}.
type RemoteDate struct {
	Date int64 `json:"$date"`
}

// RemoteItem is a line item inside a RemoteOrder.
type RemoteItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	EndAmount float64 `json:"end_amount"`
	Count     int     `json:"count"`
}

// OrderHistorySource fetches pages of the caller's order history.
//
// Pages are expected newest first. FetchPage returns an error for any
// non-success response; an empty slice means the history is exhausted.
type OrderHistorySource interface {
	FetchPage(ctx context.Context, token string, limit, skip int) ([]RemoteOrder, error)
}
