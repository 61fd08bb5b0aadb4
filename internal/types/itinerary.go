package types

import (
	"fmt"
	"strings"
	"time"
)

// Budget tiers accepted by the planner. Any other value is kept as free text
// and treated as the standard tier when estimating costs.
const (
	BudgetEconomy  = "economy"
	BudgetStandard = "standard"
	BudgetLuxury   = "luxury"
)

const dateLayout = "2006-01-02"

// MaxTripDays bounds a single itinerary.
const MaxTripDays = 30

// TripParameters describes the trip the user asked for. The itinerary core
// only ever reads it.
type TripParameters struct {
	Destination string   `json:"destination"`
	Duration    int      `json:"duration"`
	Travelers   int      `json:"travelers"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
}

// DayCount is the number of days the itinerary must cover, never less than one.
func (p TripParameters) DayCount() int {
	if p.Duration < 1 {
		return 1
	}
	return p.Duration
}

// Normalize trims the free-text fields, derives the duration from the trip
// dates when it was not given and checks the boundary rules.
func (p *TripParameters) Normalize() error {
	p.Destination = strings.TrimSpace(p.Destination)
	p.Budget = strings.TrimSpace(p.Budget)
	if p.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidTripParameters)
	}

	interests := make([]string, 0, len(p.Interests))
	for _, interest := range p.Interests {
		if s := strings.TrimSpace(interest); s != "" {
			interests = append(interests, s)
		}
	}
	p.Interests = interests

	if p.StartDate != "" || p.EndDate != "" {
		start, err := time.Parse(dateLayout, p.StartDate)
		if err != nil {
			return fmt.Errorf("%w: invalid start_date %q", ErrInvalidTripParameters, p.StartDate)
		}
		end, err := time.Parse(dateLayout, p.EndDate)
		if err != nil {
			return fmt.Errorf("%w: invalid end_date %q", ErrInvalidTripParameters, p.EndDate)
		}
		if start.After(end) {
			return fmt.Errorf("%w: start_date is after end_date", ErrInvalidTripParameters)
		}
		if p.Duration == 0 {
			p.Duration = int(end.Sub(start).Hours()/24) + 1
		}
	}

	if p.Duration < 1 {
		return fmt.Errorf("%w: duration must be at least 1 day", ErrInvalidTripParameters)
	}
	if p.Duration > MaxTripDays {
		return fmt.Errorf("%w: duration must be at most %d days", ErrInvalidTripParameters, MaxTripDays)
	}
	if p.Travelers < 1 {
		p.Travelers = 1
	}
	return nil
}

// ValidationReport is the outcome of checking an itinerary text against the
// section and time-slot schema.
type ValidationReport struct {
	Valid         bool            `json:"valid"`
	Issues        []string        `json:"issues"`
	SectionsFound map[string]bool `json:"sections_found"`
	Itinerary     string          `json:"itinerary"`
}

// Found reports whether the section with the given key was recognised.
func (r ValidationReport) Found(key string) bool {
	return r.SectionsFound[key]
}

// PeriodContent is the text of one time slot plus its bullet items.
type PeriodContent struct {
	RawText string   `json:"raw_text"`
	Items   []string `json:"items"`
}

type DayPeriods struct {
	Morning   *PeriodContent `json:"morning"`
	Afternoon *PeriodContent `json:"afternoon"`
	Evening   *PeriodContent `json:"evening"`
}

// ParsedDay is one day of an itinerary as extracted by the structural parser.
type ParsedDay struct {
	DayNumber int        `json:"day_number"`
	Periods   DayPeriods `json:"periods"`
	Transport *string    `json:"transport"`
	Food      *string    `json:"food"`
}
