package activity

import (
	"errors"
	"math"
	"strings"
	"time"
)

// TimeLayout is the stored form of timestamp and createdAt. It is fixed width
// and always UTC, so comparing two stored values as strings orders them in time.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// DefaultWeightKg is used for the calorie estimate when the client sends no weight.
const DefaultWeightKg = 70.0

// DefaultMET applies to activity types missing from the MET table.
const DefaultMET = 5.0

// FilterAll is reported as filterType when a summary is not restricted to one type.
const FilterAll = "all"

var (
	// ErrInvalidRequest marks malformed bodies and missing or invalid fields (400).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFound marks a missing activity for the given id and user (404).
	ErrNotFound = errors.New("activity not found")
	// ErrStorage marks any failure talking to the document store, including
	// a missing connection string (500).
	ErrStorage = errors.New("storage error")
)

// Activity is one logged workout, stored as a single document partitioned by UserID.
type Activity struct {
	ID              string `json:"id" bson:"_id"`
	UserID          string `json:"userId" bson:"userId"`
	Type            string `json:"type" bson:"type"`
	DurationMinutes int    `json:"durationMinutes" bson:"durationMinutes"`
	Calories        int    `json:"calories" bson:"calories"`
	Notes           string `json:"notes" bson:"notes"`
	Timestamp       string `json:"timestamp" bson:"timestamp"`
	CreatedAt       string `json:"createdAt" bson:"createdAt"`
}

// Summary aggregates a user's activities over a time window.
type Summary struct {
	UserID          string `json:"userId"`
	From            string `json:"from"`
	To              string `json:"to"`
	FilterType      string `json:"filterType"`
	TotalActivities int    `json:"totalActivities"`
	TotalMinutes    int    `json:"totalMinutes"`
	TotalCalories   int    `json:"totalCalories"`
}

// Filter selects a user's activities whose timestamp lies in [From, To].
// From and To are already in TimeLayout. An empty Type matches every type.
type Filter struct {
	UserID string
	Type   string
	From   string
	To     string
}

// Matches reports whether a satisfies the filter.
func (f Filter) Matches(a *Activity) bool {
	if a.UserID != f.UserID {
		return false
	}
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	return a.Timestamp >= f.From && a.Timestamp <= f.To
}

var metValues = map[string]float64{
	"run":   10,
	"walk":  4,
	"cycle": 8,
	"swim":  9,
	"other": 5,
}

// KnownType reports whether activityType has its own MET entry.
func KnownType(activityType string) bool {
	_, ok := metValues[activityType]
	return ok
}

// MET returns the metabolic equivalent for an activity type, DefaultMET when unknown.
func MET(activityType string) float64 {
	if v, ok := metValues[activityType]; ok {
		return v
	}
	return DefaultMET
}

// Calories estimates burned calories as floor(minutes * MET * 3.5 * kg / 200).
func Calories(activityType string, durationMinutes int, weightKg float64) int {
	return int(math.Floor(float64(durationMinutes) * MET(activityType) * 3.5 * weightKg / 200))
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

var acceptedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 (offset optional) or a bare YYYY-MM-DD date.
// Values without an offset are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("unrecognised time " + s)
}
