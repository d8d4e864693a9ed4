package listing

import (
	"slices"
	"strings"
	"time"

	"marketdash/internal/domain"
)

// SortKey enumerates the fields a list view can be ordered by.
type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"
	SortByStatus SortKey = "status"
)

// Direction represents ordering direction for sortable fields.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseSortKey maps a query value to a SortKey, falling back to date.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByAmount:
		return SortByAmount
	case SortByStatus:
		return SortByStatus
	default:
		return SortByDate
	}
}

// ParseDirection maps a query value to a Direction. Blank or unknown values
// resolve to the key's default.
func ParseDirection(s string, key SortKey) Direction {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc
	case Desc:
		return Desc
	default:
		return DefaultDirection(key)
	}
}

// DefaultDirection is most-recent-first for dates and ascending otherwise.
func DefaultDirection(key SortKey) Direction {
	if key == SortByDate {
		return Desc
	}
	return Asc
}

// SortState is the current ordering of a view.
type SortState struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// NewSortState starts at key with its default direction.
func NewSortState(key SortKey) SortState {
	return SortState{Key: key, Direction: DefaultDirection(key)}
}

// Select applies a user click on key: the same key flips direction, a new
// key resets to that key's default.
func (s SortState) Select(key SortKey) SortState {
	if key == s.Key {
		if s.Direction == Asc {
			s.Direction = Desc
		} else {
			s.Direction = Asc
		}
		return s
	}
	return NewSortState(key)
}

// Sort returns a stably ordered copy of records. Equal keys keep their
// original relative order in both directions.
func Sort(records []domain.Record, key SortKey, dir Direction) []domain.Record {
	out := slices.Clone(records)
	cmp := comparator(key)
	slices.SortStableFunc(out, func(a, b domain.Record) int {
		c := cmp(a, b)
		if dir == Desc {
			return -c
		}
		return c
	})
	return out
}

func comparator(key SortKey) func(a, b domain.Record) int {
	switch key {
	case SortByAmount:
		return func(a, b domain.Record) int { return a.Amount.Cmp(b.Amount) }
	case SortByStatus:
		return func(a, b domain.Record) int { return strings.Compare(a.Status, b.Status) }
	default:
		return func(a, b domain.Record) int { return dateOf(a).Compare(dateOf(b)) }
	}
}

// dateOf treats a missing date as the zero time so undated records sort oldest.
func dateOf(r domain.Record) time.Time {
	if r.Date == nil {
		return time.Time{}
	}
	return *r.Date
}
