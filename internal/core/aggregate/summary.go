package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/datawolt/datawolt/internal/core/domain"
)

// SummaryPolicy tunes the cross-user report.
type SummaryPolicy struct {
	// MinItemCount keeps only dishes ordered strictly more than this many times.
	MinItemCount int
	// MinUnitPrice ignores items whose unit price is at or below this value.
	// Zero disables the price floor.
	MinUnitPrice float64
	// TopN caps the restaurant ranking. Zero or less means DefaultTopN.
	TopN int
}

const (
	DefaultMinItemCount = 10
	DefaultTopN         = 10
)

// DefaultSummaryPolicy keeps dishes counted more than ten times, applies no
// price floor and ranks ten restaurants.
func DefaultSummaryPolicy() SummaryPolicy {
	return SummaryPolicy{MinItemCount: DefaultMinItemCount, TopN: DefaultTopN}
}

// UserTotals is one point of the expenses scatter chart. Values are rounded
// to whole currency units and deliberately carry no user id.
type UserTotals struct {
	YearlyExpense     float64 `json:"yearly_expense"`
	OrderCount        int     `json:"order_count"`
	AverageOrderPrice float64 `json:"average_order_price"`
}

// DishCount is the number of times a dish was ordered across all users.
type DishCount struct {
	VenueNameFixed string `json:"venue_name_fixed"`
	Name           string `json:"name"`
	Count          int    `json:"count"`
}

// RestaurantSpend ranks venues by total spend within a currency.
type RestaurantSpend struct {
	Currency       string  `json:"currency"`
	VenueNameFixed string  `json:"venue_name_fixed"`
	Total          float64 `json:"total"`
	Orders         int     `json:"orders"`
}

// Summary is the cross-user report.
type Summary struct {
	Users          []UserTotals      `json:"users"`
	Dishes         []DishCount       `json:"dishes"`
	TopRestaurants []RestaurantSpend `json:"top_restaurants"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

type dishKey struct{ venue, name string }

type restaurantKey struct{ currency, venue string }

type restaurantAcc struct {
	total  decimal.Decimal
	orders int
}

// SummaryBuilder accumulates snapshots one at a time so the full collection
// never has to be held in memory.
type SummaryBuilder struct {
	policy      SummaryPolicy
	users       []UserTotals
	dishes      map[dishKey]int
	restaurants map[restaurantKey]*restaurantAcc
}

// NewSummaryBuilder returns an empty builder applying policy.
func NewSummaryBuilder(policy SummaryPolicy) *SummaryBuilder {
	if policy.TopN <= 0 {
		policy.TopN = DefaultTopN
	}
	return &SummaryBuilder{
		policy:      policy,
		dishes:      make(map[dishKey]int),
		restaurants: make(map[restaurantKey]*restaurantAcc),
	}
}

// Add folds one snapshot into the report. Empty snapshots are ignored.
func (b *SummaryBuilder) Add(s *domain.UserSnapshot) {
	if s.Empty() {
		return
	}

	var total decimal.Decimal
	for _, o := range s.Orders {
		price := decimal.NewFromFloat(o.TotalPrice)
		total = total.Add(price)

		k := restaurantKey{o.Currency, o.VenueNameFixed}
		acc, ok := b.restaurants[k]
		if !ok {
			acc = &restaurantAcc{}
			b.restaurants[k] = acc
		}
		acc.total = acc.total.Add(price)
		acc.orders++
	}

	n := len(s.Orders)
	yearly := total.InexactFloat64()
	b.users = append(b.users, UserTotals{
		YearlyExpense:     math.Round(yearly),
		OrderCount:        n,
		AverageOrderPrice: math.Round(yearly / float64(n)),
	})

	for _, it := range s.Items {
		if b.policy.MinUnitPrice > 0 && unitPrice(it) <= b.policy.MinUnitPrice {
			continue
		}
		b.dishes[dishKey{it.VenueNameFixed, it.Name}] += it.Count
	}
}

// Result returns the finished report.
func (b *SummaryBuilder) Result(now time.Time) *Summary {
	out := &Summary{
		Users:          b.users,
		Dishes:         make([]DishCount, 0),
		TopRestaurants: make([]RestaurantSpend, 0, len(b.restaurants)),
		GeneratedAt:    now.UTC(),
	}
	if out.Users == nil {
		out.Users = make([]UserTotals, 0)
	}

	for k, count := range b.dishes {
		if count <= b.policy.MinItemCount {
			continue
		}
		out.Dishes = append(out.Dishes, DishCount{VenueNameFixed: k.venue, Name: k.name, Count: count})
	}
	sort.Slice(out.Dishes, func(i, j int) bool {
		a, c := out.Dishes[i], out.Dishes[j]
		if a.Count != c.Count {
			return a.Count > c.Count
		}
		if a.VenueNameFixed != c.VenueNameFixed {
			return a.VenueNameFixed < c.VenueNameFixed
		}
		return a.Name < c.Name
	})

	for k, acc := range b.restaurants {
		out.TopRestaurants = append(out.TopRestaurants, RestaurantSpend{
			Currency:       k.currency,
			VenueNameFixed: k.venue,
			Total:          acc.total.InexactFloat64(),
			Orders:         acc.orders,
		})
	}
	sort.Slice(out.TopRestaurants, func(i, j int) bool {
		a, c := out.TopRestaurants[i], out.TopRestaurants[j]
		if a.Total != c.Total {
			return a.Total > c.Total
		}
		if a.Currency != c.Currency {
			return a.Currency < c.Currency
		}
		return a.VenueNameFixed < c.VenueNameFixed
	})
	if len(out.TopRestaurants) > b.policy.TopN {
		out.TopRestaurants = out.TopRestaurants[:b.policy.TopN]
	}

	return out
}

func unitPrice(it domain.ItemRecord) float64 {
	if it.Count <= 1 {
		return it.Price
	}
	return it.Price / float64(it.Count)
}
