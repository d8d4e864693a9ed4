// Package filter decides which normalized records belong to a list view.
package filter

import (
	"strings"
	"time"

	"marketdash/internal/domain"
	"marketdash/internal/utils"

	"github.com/shopspring/decimal"
)

// State is the user-selected filter combination for one view.
// The zero value matches every record.
type State struct {
	Query      string
	Statuses   []string
	Categories []string
	MaxAmount  *decimal.Decimal
	From       *time.Time
	To         *time.Time
}

// Matches reports whether rec passes every active predicate of s.
func Matches(rec domain.Record, s State) bool {
	return matchesQuery(rec, s.Query) &&
		matchesStatus(rec, s.Statuses) &&
		matchesCategory(rec, s.Categories) &&
		matchesCeiling(rec, s.MaxAmount) &&
		matchesDateRange(rec, s.From, s.To)
}

// Apply returns the records matching s in their original order.
func Apply(records []domain.Record, s State) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if Matches(rec, s) {
			out = append(out, rec)
		}
	}
	return out
}

// SearchFields lists the free-text searchable values of rec for its kind.
// Blank values are omitted so a missing field never matches.
func SearchFields(rec domain.Record) []string {
	var fields []string
	switch rec.Kind {
	case domain.KindProduct:
		fields = []string{rec.ID, rec.Title, rec.Description, rec.Category, rec.Status}
	case domain.KindOrder:
		fields = []string{rec.ID, rec.Email, rec.Reference, rec.Title, rec.Status}
	case domain.KindPayment:
		fields = []string{rec.ID, rec.Email, rec.Reference, rec.Category, rec.Status}
	case domain.KindWithdrawal:
		fields = []string{rec.ID, rec.UserID, rec.Reference, rec.Title, rec.Status}
	case domain.KindUser:
		fields = []string{rec.ID, rec.Name, rec.Email, rec.Role, rec.Status}
	default:
		fields = []string{rec.ID, rec.Title, rec.Reference, rec.Name, rec.Status}
	}
	out := fields[:0]
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

func matchesQuery(rec domain.Record, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range SearchFields(rec) {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func matchesStatus(rec domain.Record, statuses []string) bool {
	facet, active := facetSet(statuses)
	if !active {
		return true
	}
	if !domain.IsKnownStatus(rec.Kind, rec.Status) {
		return false
	}
	_, ok := facet[rec.Status]
	return ok
}

func matchesCategory(rec domain.Record, categories []string) bool {
	facet, active := facetSet(categories)
	if !active {
		return true
	}
	_, ok := facet[utils.NormalizeStatus(rec.Category)]
	return ok
}

func matchesCeiling(rec domain.Record, ceiling *decimal.Decimal) bool {
	if ceiling == nil {
		return true
	}
	if rec.HasFlag(domain.FlagAmount) {
		return false
	}
	return rec.Amount.LessThanOrEqual(*ceiling)
}

func matchesDateRange(rec domain.Record, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if rec.Date == nil {
		return false
	}
	day := utils.DayOf(*rec.Date)
	if from != nil && day.Before(utils.DayOf(*from)) {
		return false
	}
	if to != nil && day.After(utils.DayOf(*to)) {
		return false
	}
	return true
}

// facetSet builds the lookup for a facet. An empty selection, or one that
// contains "all", leaves the facet inactive.
func facetSet(values []string) (map[string]struct{}, bool) {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = utils.NormalizeStatus(v)
		if v == "" {
			continue
		}
		if v == domain.FacetAll {
			return nil, false
		}
		out[v] = struct{}{}
	}
	return out, len(out) > 0
}
