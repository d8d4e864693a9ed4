// Package aggregate computes named KPI metrics over normalized records.
// A metric is never "sum of everything": each definition carries its own
// inclusion predicate. Sums stay exact decimals; rounding is a display concern.
package aggregate

import (
	"marketdash/internal/domain"

	"github.com/shopspring/decimal"
)

// Predicate decides whether a record counts toward a metric.
type Predicate func(domain.Record) bool

// Field selects the decimal a Sum accumulator adds up.
type Field func(domain.Record) decimal.Decimal

// Accumulator folds included records into a value.
type Accumulator struct {
	field Field
	count bool
}

// Sum adds field over included records.
func Sum(field Field) Accumulator { return Accumulator{field: field} }

// Count counts included records.
func Count() Accumulator { return Accumulator{count: true} }

// Amount selects Record.Amount.
func Amount(r domain.Record) decimal.Decimal { return r.Amount }

// Fee selects Record.Fee.
func Fee(r domain.Record) decimal.Decimal { return r.Fee }

// Definition names a metric with its inclusion rule.
type Definition struct {
	Name        string
	Predicate   Predicate
	Accumulator Accumulator
}

// Result maps metric names to values. Counts are whole decimals.
type Result map[string]decimal.Decimal

// Get returns the metric value, zero when absent.
func (r Result) Get(name string) decimal.Decimal {
	if v, ok := r[name]; ok {
		return v
	}
	return decimal.Zero
}

// Int returns a count metric as an int.
func (r Result) Int(name string) int {
	return int(r.Get(name).IntPart())
}

// Aggregate evaluates every definition over records. An empty input yields
// zero for each metric.
func Aggregate(records []domain.Record, defs []Definition) Result {
	out := make(Result, len(defs))
	for _, def := range defs {
		total := decimal.Zero
		for _, rec := range records {
			if def.Predicate != nil && !def.Predicate(rec) {
				continue
			}
			if def.Accumulator.count {
				total = total.Add(decimal.NewFromInt(1))
				continue
			}
			if def.Accumulator.field != nil {
				total = total.Add(def.Accumulator.field(rec))
			}
		}
		out[def.Name] = total
	}
	return out
}

// All is the predicate that includes every record.
func All(domain.Record) bool { return true }

// StatusIn includes records whose normalized status is one of statuses.
func StatusIn(statuses ...string) Predicate {
	lookup := make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		lookup[s] = struct{}{}
	}
	return func(r domain.Record) bool {
		_, ok := lookup[r.Status]
		return ok
	}
}

// StatusIs includes records whose normalized status equals status exactly.
func StatusIs(status string) Predicate {
	return func(r domain.Record) bool { return r.Status == status }
}

// Or includes a record when any predicate does.
func Or(preds ...Predicate) Predicate {
	return func(r domain.Record) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}

// And includes a record when every predicate does.
func And(preds ...Predicate) Predicate {
	return func(r domain.Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(r domain.Record) bool { return !p(r) }
}

// Credited includes records carrying the credited flag.
func Credited(r domain.Record) bool { return r.Credited }
