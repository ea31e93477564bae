// Package search evaluates optional, independently specified criteria
// against a collection. Criteria combine with logical AND; an absent
// criterion is vacuously true.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DateLayout is the DD-MM-YYYY layout used by every date criterion.
const DateLayout = "02-01-2006"

// TimeLayout is the HH:MM:SS layout of appointment and bill times.
const TimeLayout = "15:04:05"

type predicate[T any] func(T) (bool, error)

// Query collects criteria for entities of type T.
type Query[T any] struct {
	logger zerolog.Logger
	preds  []predicate[T]
	err    error
}

func New[T any](logger zerolog.Logger) *Query[T] {
	return &Query[T]{logger: logger}
}

// EqualFold adds a case-insensitive exact match on field. A nil or empty
// want adds nothing.
func (q *Query[T]) EqualFold(want *string, field func(T) string) *Query[T] {
	if want == nil || *want == "" {
		return q
	}
	w := *want
	q.preds = append(q.preds, func(v T) (bool, error) {
		return strings.EqualFold(field(v), w), nil
	})
	return q
}

// IntRange adds inclusive bounds on field. Either bound may be nil.
func (q *Query[T]) IntRange(min, max *int, field func(T) int) *Query[T] {
	if min == nil && max == nil {
		return q
	}
	q.preds = append(q.preds, func(v T) (bool, error) {
		n := field(v)
		if min != nil && n < *min {
			return false, nil
		}
		if max != nil && n > *max {
			return false, nil
		}
		return true, nil
	})
	return q
}

// FloatRange adds inclusive bounds on a float64 field. Either bound may be nil.
func (q *Query[T]) FloatRange(min, max *float64, field func(T) float64) *Query[T] {
	if min == nil && max == nil {
		return q
	}
	q.preds = append(q.preds, func(v T) (bool, error) {
		n := field(v)
		if min != nil && n < *min {
			return false, nil
		}
		if max != nil && n > *max {
			return false, nil
		}
		return true, nil
	})
	return q
}

// DateRange adds inclusive DD-MM-YYYY bounds on field. If a bound, or a
// date read from an entity, fails to parse, Run returns an empty result.
func (q *Query[T]) DateRange(from, to *string, field func(T) string) *Query[T] {
	from, to = nonEmpty(from), nonEmpty(to)
	if from == nil && to == nil {
		return q
	}
	var lo, hi *time.Time
	if from != nil {
		t, err := time.Parse(DateLayout, *from)
		if err != nil {
			q.fail(fmt.Errorf("parse from date %q: %w", *from, err))
			return q
		}
		lo = &t
	}
	if to != nil {
		t, err := time.Parse(DateLayout, *to)
		if err != nil {
			q.fail(fmt.Errorf("parse to date %q: %w", *to, err))
			return q
		}
		hi = &t
	}
	q.preds = append(q.preds, func(v T) (bool, error) {
		raw := field(v)
		d, err := time.Parse(DateLayout, raw)
		if err != nil {
			return false, fmt.Errorf("parse stored date %q: %w", raw, err)
		}
		if lo != nil && d.Before(*lo) {
			return false, nil
		}
		if hi != nil && d.After(*hi) {
			return false, nil
		}
		return true, nil
	})
	return q
}

// Empty reports whether no criterion was supplied. Callers return the full
// collection instead of running an empty query.
func (q *Query[T]) Empty() bool {
	return len(q.preds) == 0 && q.err == nil
}

// Err returns the parse error that will abort Run, if any.
func (q *Query[T]) Err() error { return q.err }

// Run returns the items satisfying every criterion, preserving input order.
// A date parse failure is logged and yields an empty, non-nil result.
func (q *Query[T]) Run(items []T) []T {
	out := make([]T, 0)
	if q.err != nil {
		q.logger.Warn().Err(q.err).Msg("search aborted")
		return out
	}
	for _, item := range items {
		ok, err := q.match(item)
		if err != nil {
			q.logger.Warn().Err(err).Msg("search aborted")
			return make([]T, 0)
		}
		if ok {
			out = append(out, item)
		}
	}
	return out
}

func (q *Query[T]) match(item T) (bool, error) {
	for _, p := range q.preds {
		ok, err := p(item)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (q *Query[T]) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
