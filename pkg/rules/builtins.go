package rules

import (
	"fmt"
	"time"

	campus "github.com/goliatone/go-campus"
)

// NewBuiltins registers the domain helpers rule authors expect:
//
//	days_until(date)   whole days from now to an ISO date (negative if past)
//	pct(part, whole)   percentage clamped to [0, 100]
//	clamp(v, lo, hi)   bound a number to a range
func NewBuiltins(now func() time.Time) *FunctionRegistry {
	if now == nil {
		now = time.Now
	}
	registry := NewFunctionRegistry()

	_ = registry.Register("days_until", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("rules: days_until expects 1 argument, got %d", len(args))
		}
		date, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("rules: days_until expects an ISO date string")
		}
		return campus.DaysUntil(date, now()), nil
	})

	_ = registry.Register("pct", func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("rules: pct expects 2 arguments, got %d", len(args))
		}
		part, err := asFloat(args[0])
		if err != nil {
			return nil, err
		}
		whole, err := asFloat(args[1])
		if err != nil {
			return nil, err
		}
		if whole == 0 {
			return 0.0, nil
		}
		value := part / whole * 100
		if value < 0 {
			value = 0
		}
		if value > 100 {
			value = 100
		}
		return value, nil
	})

	_ = registry.Register("clamp", func(args ...any) (any, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("rules: clamp expects 3 arguments, got %d", len(args))
		}
		value, err := asFloat(args[0])
		if err != nil {
			return nil, err
		}
		lo, err := asFloat(args[1])
		if err != nil {
			return nil, err
		}
		hi, err := asFloat(args[2])
		if err != nil {
			return nil, err
		}
		if value < lo {
			return lo, nil
		}
		if value > hi {
			return hi, nil
		}
		return value, nil
	})

	return registry
}

func asFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("rules: expected a number, got %T", value)
	}
}
