package dashboard

import (
	"encoding/json"
	"fmt"
	"time"

	campus "github.com/goliatone/go-campus"
	"github.com/goliatone/go-campus/pkg/rules"
)

// Severity ranks an alert.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Rule is one configurable alert: when Expr evaluates truthy against the
// state snapshot, the alert fires.
type Rule struct {
	Name     string
	Expr     string
	Severity Severity
	Message  string
}

// Alert is one fired rule.
type Alert struct {
	Rule     string
	Severity Severity
	Message  string
}

// DefaultRules are the built-in nudges, written for the expr engine.
// Expressions address the state's top-level sections by their wire names.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "focus-streak-broken",
			Expr:     `focus.streak == 0`,
			Severity: SeverityWarning,
			Message:  "Focus streak is at zero. One session today restarts it.",
		},
		{
			Name:     "short-focus-default",
			Expr:     `settings.focusMinutes < 25`,
			Severity: SeverityInfo,
			Message:  "Default focus block is under 25 minutes.",
		},
		{
			Name:     "no-open-applications",
			Expr:     `len(placement.applications) == 0`,
			Severity: SeverityInfo,
			Message:  "No applications in the pipeline yet.",
		},
	}
}

// EngineOption configures an alert engine.
type EngineOption func(*Engine)

// WithLogger records every evaluation.
func WithLogger(logger rules.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRules replaces the default rule set.
func WithRules(ruleset []Rule) EngineOption {
	return func(e *Engine) {
		e.rules = ruleset
	}
}

// WithNow overrides the evaluation timestamp source.
func WithNow(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine evaluates alert rules with a pluggable expression engine.
type Engine struct {
	evaluator rules.Evaluator
	logger    rules.Logger
	rules     []Rule
	now       func() time.Time
}

// NewEngine constructs an engine around an Evaluator. A nil evaluator is
// rejected at evaluation time, not here, so construction stays infallible.
func NewEngine(evaluator rules.Evaluator, opts ...EngineOption) *Engine {
	e := &Engine{
		evaluator: evaluator,
		logger:    rules.NoopLogger{},
		rules:     DefaultRules(),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Evaluate runs every rule against the state and returns the fired alerts.
// A rule that fails to evaluate is skipped and logged; one broken rule must
// not silence the others.
func (e *Engine) Evaluate(state campus.DomainState) ([]Alert, error) {
	if e.evaluator == nil {
		return nil, fmt.Errorf("dashboard: evaluator is required")
	}
	snapshot, err := StateSnapshot(state)
	if err != nil {
		return nil, fmt.Errorf("dashboard: snapshot state: %w", err)
	}

	now := e.now()
	var alerts []Alert
	for _, rule := range e.rules {
		started := time.Now()
		result, err := e.evaluator.Evaluate(rules.RuleContext{
			Snapshot: snapshot,
			Now:      &now,
			Rule:     rule.Name,
		}, rule.Expr)
		e.logger.LogEvaluation(rules.LogEvent{
			Engine:   "dashboard",
			Expr:     rule.Expr,
			Rule:     rule.Name,
			Duration: time.Since(started),
			Err:      err,
		})
		if err != nil {
			continue
		}
		if rules.Truthy(result) {
			alerts = append(alerts, Alert{
				Rule:     rule.Name,
				Severity: rule.Severity,
				Message:  rule.Message,
			})
		}
	}
	return alerts, nil
}

// StateSnapshot renders the state as the generic map rule expressions
// address, using the same wire names as the persisted JSON.
func StateSnapshot(state campus.DomainState) (map[string]any, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	var snapshot map[string]any
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}
