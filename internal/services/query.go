package services

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"marketdash/internal/domain"
	"marketdash/internal/filter"
	"marketdash/internal/listing"
	"marketdash/internal/utils"
)

// ListQuery is one list-view request.
type ListQuery struct {
	Kind     domain.Kind
	Filter   filter.State
	Sort     listing.SortState
	Page     int
	PageSize int
}

// ParseListQuery reads q, status, category, max_amount, from, to, sort, dir
// and page. Facets accept repeated params or comma lists.
func ParseListQuery(kind domain.Kind, values url.Values, pageSize int) (ListQuery, error) {
	q := ListQuery{Kind: kind, PageSize: pageSize, Page: 1}
	q.Filter.Query = strings.TrimSpace(values.Get("q"))
	q.Filter.Statuses = splitAll(values["status"])
	q.Filter.Categories = splitAll(values["category"])

	if raw := strings.TrimSpace(values.Get("max_amount")); raw != "" {
		amount, ok := utils.ParseAmount(raw)
		if !ok || amount.IsNegative() {
			return q, domain.ValidationError{Field: "max_amount", Msg: "must be a non-negative amount"}
		}
		q.Filter.MaxAmount = &amount
	}
	from, err := parseDay("from", values.Get("from"))
	if err != nil {
		return q, err
	}
	to, err := parseDay("to", values.Get("to"))
	if err != nil {
		return q, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return q, domain.ValidationError{Field: "to", Msg: "must not be before from"}
	}
	q.Filter.From, q.Filter.To = from, to

	key := listing.ParseSortKey(values.Get("sort"))
	q.Sort = listing.SortState{Key: key, Direction: listing.ParseDirection(values.Get("dir"), key)}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return q, domain.ValidationError{Field: "page", Msg: "must be a number"}
		}
		q.Page = page
	}
	return q, nil
}

func splitAll(values []string) []string {
	out := []string{}
	for _, v := range values {
		out = append(out, utils.SplitList(v)...)
	}
	return out
}

func parseDay(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return nil, domain.ValidationError{Field: field, Msg: "must be YYYY-MM-DD", Err: err}
	}
	return &t, nil
}
