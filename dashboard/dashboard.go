// Package dashboard holds the display-level logic of the HTML pages:
// grouping, filtering and sorting of already fetched rows, and value
// formatting. Nothing here touches the store.
package dashboard

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"econ-pulse/models"
	"econ-pulse/pulse"
)

// All is the filter value that matches everything.
const All = "All"

// LatestByName keeps the most recent reading per indicator name.
func LatestByName(indicators []models.Indicator) map[string]models.Indicator {
	latest := make(map[string]models.Indicator)
	for _, ind := range indicators {
		cur, ok := latest[ind.Name]
		if !ok || ind.Date.After(cur.Date) {
			latest[ind.Name] = ind
		}
	}
	return latest
}

// Regions returns the distinct regions sorted, prefixed with All.
func Regions(countries []models.Country) []string {
	seen := make(map[string]struct{})
	var regions []string
	for _, c := range countries {
		if _, ok := seen[c.Region]; ok {
			continue
		}
		seen[c.Region] = struct{}{}
		regions = append(regions, c.Region)
	}
	sort.Strings(regions)
	return append([]string{All}, regions...)
}

// EventTypes returns the distinct event types sorted, prefixed with All.
func EventTypes(events []models.Event) []string {
	seen := make(map[string]struct{})
	var types []string
	for _, e := range events {
		if _, ok := seen[e.Type]; ok {
			continue
		}
		seen[e.Type] = struct{}{}
		types = append(types, e.Type)
	}
	sort.Strings(types)
	return append([]string{All}, types...)
}

// FilterByRegion keeps scores of countries in region. Empty or All keeps
// everything.
func FilterByRegion(scores []models.CountryPulse, region string) []models.CountryPulse {
	if region == "" || region == All {
		return scores
	}
	var out []models.CountryPulse
	for _, s := range scores {
		if s.Country.Region == region {
			out = append(out, s)
		}
	}
	return out
}

// SortByScore orders scores highest first. A missing score counts as 0.
func SortByScore(scores []models.CountryPulse) []models.CountryPulse {
	out := slices.Clone(scores)
	value := func(cp models.CountryPulse) int {
		if cp.Score == nil {
			return 0
		}
		return cp.Score.Score
	}
	sort.SliceStable(out, func(i, j int) bool {
		return value(out[i]) > value(out[j])
	})
	return out
}

// FilterByType keeps events of the given type. Empty or All keeps everything.
func FilterByType(events []models.Event, eventType string) []models.Event {
	if eventType == "" || eventType == All {
		return events
	}
	var out []models.Event
	for _, e := range events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// SortEventsNewestFirst orders events by date, newest first.
func SortEventsNewestFirst(events []models.Event) []models.Event {
	out := slices.Clone(events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// ChartPoint is one point of the pulse history chart.
type ChartPoint struct {
	Label string
	Score int
}

// PulseChart orders a score history oldest first for plotting.
func PulseChart(history []models.PulseScore) []ChartPoint {
	sorted := slices.Clone(history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	points := make([]ChartPoint, 0, len(sorted))
	for _, s := range sorted {
		points = append(points, ChartPoint{Label: s.Date.Format("Jan 06"), Score: s.Score})
	}
	return points
}

// ScoreBand names the health band of a score.
func ScoreBand(score int) string {
	switch {
	case score >= 70:
		return "strong"
	case score >= 50:
		return "moderate"
	default:
		return "weak"
	}
}

// Percent renders a 0..1 ratio as a whole percentage.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}

// Fixed renders v with the given number of decimals.
func Fixed(v float64, decimals int) string {
	return fmt.Sprintf("%.*f", decimals, v)
}

// SignedPercent renders a delta with an explicit sign, e.g. "+3.20%".
func SignedPercent(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// DeltaClass returns "up", "down" or "flat" for styling a delta.
func DeltaClass(v float64) string {
	switch {
	case v > 0:
		return "up"
	case v < 0:
		return "down"
	default:
		return "flat"
	}
}

// Date renders a date the way the pages show it.
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// Label returns the display label of an indicator name.
func Label(name string) string {
	if l, ok := models.IndicatorLabels[name]; ok {
		return l
	}
	return strings.ReplaceAll(name, "_", " ")
}

// Humanize turns a tag such as "rate_change" into "Rate Change".
func Humanize(tag string) string {
	parts := strings.Fields(strings.ReplaceAll(tag, "_", " "))
	for i, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		parts[i] = string(unicode.ToUpper(r)) + p[size:]
	}
	return strings.Join(parts, " ")
}

// IndicatorCard is the latest reading shown for one indicator name.
// Indicator is nil when the country has no reading for a known name.
type IndicatorCard struct {
	Name      string
	Label     string
	Indicator *models.Indicator
}

// IndicatorCards lists the known indicators in display order followed by
// any other names found in the rows, each with its latest reading.
func IndicatorCards(indicators []models.Indicator) []IndicatorCard {
	latest := LatestByName(indicators)

	cards := make([]IndicatorCard, 0, len(latest))
	known := make(map[string]bool, len(models.IndicatorNames))
	for _, name := range models.IndicatorNames {
		known[name] = true
		card := IndicatorCard{Name: name, Label: Label(name)}
		if ind, ok := latest[name]; ok {
			card.Indicator = &ind
		}
		cards = append(cards, card)
	}

	var extra []string
	for name := range latest {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		ind := latest[name]
		cards = append(cards, IndicatorCard{Name: name, Label: Label(name), Indicator: &ind})
	}
	return cards
}

// ComponentRow is one line of the pulse score breakdown.
type ComponentRow struct {
	Label    string
	Value    float64
	Weight   float64
	Inverted bool
}

// Breakdown lists the normalized components with their weights.
func Breakdown(c models.Components) []ComponentRow {
	return []ComponentRow{
		{Label: "GDP Growth", Value: c.GDPGrowth, Weight: pulse.GDPWeight},
		{Label: "Inflation", Value: c.Inflation, Weight: pulse.InflationWeight, Inverted: true},
		{Label: "Unemployment", Value: c.Unemployment, Weight: pulse.UnemploymentWeight, Inverted: true},
		{Label: "Market Index", Value: c.MarketIndex, Weight: pulse.MarketWeight},
		{Label: "CO₂ Emissions", Value: c.CO2Emissions, Weight: pulse.CO2Weight, Inverted: true},
	}
}
