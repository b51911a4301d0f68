// Package filter turns listing query parameters into predicates: date
// intervals and limit/offset pages.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

const msgBadDate = "date has wrong format, use YYYY-MM-DD"

// DateRange is a half-open interval [Start, End). A nil bound is open;
// both nil means no filter.
type DateRange struct {
	Start *model.Date
	End   *model.Date
}

// ParseDateRange reads both bounds from query values. Unlike the inventory
// after_date parameter there is no lenient mode: any unparseable bound fails.
func ParseDateRange(startParam, endParam, startRaw, endRaw string) (DateRange, error) {
	var r DateRange
	ve := model.NewValidationError()

	if start, ok, err := parseOptionalDate(startRaw); err != nil {
		ve.Add(startParam, msgBadDate)
	} else if ok {
		r.Start = &start
	}

	if end, ok, err := parseOptionalDate(endRaw); err != nil {
		ve.Add(endParam, msgBadDate)
	} else if ok {
		r.End = &end
	}

	if err := ve.ErrOrNil(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

func parseOptionalDate(raw string) (model.Date, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Date{}, false, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return model.Date{}, false, err
	}
	return d, true, nil
}

// DatePolicy decides what happens to an after_date value that does not parse.
type DatePolicy int

const (
	// DatePolicyIgnore drops the filter and lists everything.
	DatePolicyIgnore DatePolicy = iota
	// DatePolicyReject fails the request with a validation error.
	DatePolicyReject
)

func (p DatePolicy) String() string {
	if p == DatePolicyReject {
		return "reject"
	}
	return "ignore"
}

func ParseDatePolicy(s string) (DatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return DatePolicyIgnore, nil
	case "reject":
		return DatePolicyReject, nil
	default:
		return DatePolicyIgnore, fmt.Errorf("unknown date policy %q", s)
	}
}

// AfterDateParser reads the single-sided inventory filter.
type AfterDateParser struct {
	policy DatePolicy
}

func NewAfterDateParser(policy DatePolicy) *AfterDateParser {
	return &AfterDateParser{policy: policy}
}

func (p *AfterDateParser) Policy() DatePolicy {
	return p.policy
}

// Parse returns the instant items must be created strictly after, or nil
// when no filter applies.
func (p *AfterDateParser) Parse(param, raw string) (*time.Time, error) {
	d, ok, err := parseOptionalDate(raw)
	if err != nil {
		if p.policy == DatePolicyReject {
			return nil, model.Invalid(param, msgBadDate)
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	t := d.Time
	return &t, nil
}
