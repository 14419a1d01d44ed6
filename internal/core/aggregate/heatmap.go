package aggregate

import (
	"time"

	"github.com/datawolt/datawolt/internal/core/domain"
)

// TimeOfDay is a row of the delivery heatmap.
type TimeOfDay int

const (
	Morning TimeOfDay = iota
	Noon
	Afternoon
	Evening
	Night
)

const (
	heatmapRows = 5
	heatmapCols = 7
)

// HeatmapRowLabels and HeatmapColumnLabels follow the matrix layout. Row
// labels give the local hours each bucket covers.
var (
	HeatmapRowLabels = []string{
		"Morning (7-12)",
		"Noon (13-16)",
		"Afternoon (17-19)",
		"Evening (20-23)",
		"Night (0-6)",
	}
	HeatmapColumnLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

// Heatmap counts deliveries per (time of day, weekday). Cells[row][weekday]
// with rows indexed by TimeOfDay and weekdays 0=Sunday..6=Saturday.
type Heatmap struct {
	Rows    []string                      `json:"rows"`
	Columns []string                      `json:"columns"`
	Cells   [heatmapRows][heatmapCols]int `json:"cells"`
}

// Bucket maps a local hour to its heatmap row. Checks run in order, so the
// boundaries are inclusive on the upper end.
func Bucket(hour int) TimeOfDay {
	switch {
	case hour <= 6:
		return Night
	case hour <= 12:
		return Morning
	case hour <= 16:
		return Noon
	case hour <= 19:
		return Afternoon
	case hour <= 24:
		return Evening
	default:
		return Night
	}
}

// BuildHeatmap places every order in exactly one cell, using the venue's
// local time. Unknown or empty timezones fall back to UTC.
func BuildHeatmap(orders []domain.OrderRecord) Heatmap {
	h := Heatmap{Rows: HeatmapRowLabels, Columns: HeatmapColumnLabels}
	zones := make(map[string]*time.Location)

	for _, o := range orders {
		loc, ok := zones[o.VenueTimezone]
		if !ok {
			loc = loadLocation(o.VenueTimezone)
			zones[o.VenueTimezone] = loc
		}
		local := time.UnixMilli(o.DeliveryTime).In(loc)
		h.Cells[Bucket(local.Hour())][int(local.Weekday())]++
	}
	return h
}

func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
