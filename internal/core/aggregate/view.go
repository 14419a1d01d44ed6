// Package aggregate computes the chart inputs shown on the dashboard and in the
// cross-user summary. Every function here is pure: it reads a snapshot and
// returns freshly built values, nothing is cached.
package aggregate

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/datawolt/datawolt/internal/core/domain"
)

// daysPerYear is the span the trailing window is reported against.
const daysPerYear = 365

// MonthlyTotal is the summed spend for one (currency, year-month) bucket.
type MonthlyTotal struct {
	Currency   string  `json:"currency"`
	YearMonth  string  `json:"year_month"`
	TotalPrice float64 `json:"total_price"`
}

// CurrencyValue pairs a currency with a total or a mean.
type CurrencyValue struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

// ItemSpend is one leaf of the currency → venue → item treemap.
type ItemSpend struct {
	Currency       string  `json:"currency"`
	VenueNameFixed string  `json:"venue_name_fixed"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
}

// VenueLocation is a map marker: mean coordinates of a venue and a size weight.
type VenueLocation struct {
	VenueName string  `json:"venue_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Weight    int     `json:"weight"`
}

// View is everything the per-user dashboard renders.
type View struct {
	OrderCount     int             `json:"order_count"`
	OrderEveryDays float64         `json:"order_every_days"`
	Monthly        []MonthlyTotal  `json:"monthly"`
	Totals         []CurrencyValue `json:"totals"`
	Averages       []CurrencyValue `json:"averages"`
	Everything     []ItemSpend     `json:"everything"`
	Locations      []VenueLocation `json:"locations"`
	Heatmap        Heatmap         `json:"heatmap"`
}

// Build computes the full dashboard view. The snapshot is expected to be
// deduplicated and non-empty.
func Build(s *domain.UserSnapshot) View {
	v := View{
		OrderCount: len(s.Orders),
		Monthly:    Monthly(s.Orders),
		Totals:     Totals(s.Orders),
		Averages:   Averages(s.Orders),
		Everything: Everything(s.Items),
		Locations:  Locations(s.Orders),
		Heatmap:    BuildHeatmap(s.Orders),
	}
	if n := len(s.Orders); n > 0 {
		v.OrderEveryDays = round(float64(daysPerYear)/float64(n), 2)
	}
	return v
}

// Monthly groups orders by (currency, year-month) and sums the price.
// Rows are ordered chronologically, then by currency.
func Monthly(orders []domain.OrderRecord) []MonthlyTotal {
	type key struct{ currency, month string }
	sums := make(map[key]decimal.Decimal)
	for _, o := range orders {
		k := key{o.Currency, o.YearMonth}
		sums[k] = sums[k].Add(decimal.NewFromFloat(o.TotalPrice))
	}

	out := make([]MonthlyTotal, 0, len(sums))
	for k, sum := range sums {
		out = append(out, MonthlyTotal{Currency: k.currency, YearMonth: k.month, TotalPrice: sum.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].YearMonth != out[j].YearMonth {
			return out[i].YearMonth < out[j].YearMonth
		}
		return out[i].Currency < out[j].Currency
	})
	return out
}

// Totals sums order prices per currency, largest first.
func Totals(orders []domain.OrderRecord) []CurrencyValue {
	sums, _ := perCurrency(orders)
	out := make([]CurrencyValue, 0, len(sums))
	for cur, sum := range sums {
		out = append(out, CurrencyValue{Currency: cur, Value: sum.InexactFloat64()})
	}
	sortDescending(out)
	return out
}

// Averages is the mean order price per currency, largest first.
func Averages(orders []domain.OrderRecord) []CurrencyValue {
	sums, counts := perCurrency(orders)
	out := make([]CurrencyValue, 0, len(sums))
	for cur, sum := range sums {
		mean := sum.Div(decimal.NewFromInt(int64(counts[cur])))
		out = append(out, CurrencyValue{Currency: cur, Value: mean.InexactFloat64()})
	}
	sortDescending(out)
	return out
}

// Everything sums item prices per (currency, venue, item).
func Everything(items []domain.ItemRecord) []ItemSpend {
	type key struct{ currency, venue, name string }
	sums := make(map[key]decimal.Decimal)
	for _, it := range items {
		k := key{it.Currency, it.VenueNameFixed, it.Name}
		sums[k] = sums[k].Add(decimal.NewFromFloat(it.Price))
	}

	out := make([]ItemSpend, 0, len(sums))
	for k, sum := range sums {
		out = append(out, ItemSpend{
			Currency:       k.currency,
			VenueNameFixed: k.venue,
			Name:           k.name,
			Price:          sum.InexactFloat64(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Currency != b.Currency {
			return a.Currency < b.Currency
		}
		if a.VenueNameFixed != b.VenueNameFixed {
			return a.VenueNameFixed < b.VenueNameFixed
		}
		return a.Name < b.Name
	})
	return out
}

// Locations groups orders by raw venue name. The weight is ten times the
// number of orders placed at that venue.
func Locations(orders []domain.OrderRecord) []VenueLocation {
	type acc struct {
		lat, lon float64
		n        int
	}
	byVenue := make(map[string]*acc)
	for _, o := range orders {
		a, ok := byVenue[o.VenueName]
		if !ok {
			a = &acc{}
			byVenue[o.VenueName] = a
		}
		a.lat += o.Latitude
		a.lon += o.Longitude
		a.n++
	}

	out := make([]VenueLocation, 0, len(byVenue))
	for name, a := range byVenue {
		out = append(out, VenueLocation{
			VenueName: name,
			Latitude:  a.lat / float64(a.n),
			Longitude: a.lon / float64(a.n),
			Weight:    a.n * 10,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VenueName < out[j].VenueName })
	return out
}

func perCurrency(orders []domain.OrderRecord) (map[string]decimal.Decimal, map[string]int) {
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, o := range orders {
		sums[o.Currency] = sums[o.Currency].Add(decimal.NewFromFloat(o.TotalPrice))
		counts[o.Currency]++
	}
	return sums, counts
}

func sortDescending(vals []CurrencyValue) {
	sort.Slice(vals, func(i, j int) bool {
		if vals[i].Value != vals[j].Value {
			return vals[i].Value > vals[j].Value
		}
		return vals[i].Currency < vals[j].Currency
	})
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
