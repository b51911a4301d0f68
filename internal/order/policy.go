package order

import (
	"fmt"
	"strings"
)

// Policy selects how a relationship lookup treats a parent id.
type Policy string

const (
	// PolicyStrict checks that the parent exists before listing children.
	PolicyStrict Policy = "strict"
	// PolicyLenient lists children directly; an unknown parent looks empty.
	PolicyLenient Policy = "lenient"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyStrict:
		return PolicyStrict, nil
	case PolicyLenient:
		return PolicyLenient, nil
	default:
		return "", fmt.Errorf("unknown relationship policy %q", s)
	}
}
