package validation

import (
	"github.com/platinummonkey/ordcheck/pkg/codec"
	"github.com/platinummonkey/ordcheck/pkg/reaction"
	"github.com/platinummonkey/ordcheck/pkg/units"
)

// Engine canonicalizes and validates reaction records. It holds only immutable state and
// is safe for concurrent use; every call owns its own tree and report.
type Engine struct {
	config *Config
	rules  []Rule
	units  *units.Registry
}

// NewEngine creates an engine with the built-in rules and the default unit registry.
// A nil config selects DefaultConfig.
func NewEngine(config *Config) (*Engine, error) {
	return NewEngineWithRules(config, DefaultRuleRegistry(), units.Default())
}

// NewEngineWithRules creates an engine over a custom rule set or unit registry. Nil
// arguments select the defaults.
func NewEngineWithRules(config *Config, rules *RuleRegistry, registry *units.Registry) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if rules == nil {
		rules = DefaultRuleRegistry()
	}
	if registry == nil {
		registry = units.Default()
	}
	if err := config.Validate(rules); err != nil {
		return nil, err
	}
	cfg := *config
	cfg.DisabledRules = append([]string(nil), config.DisabledRules...)
	return &Engine{
		config: &cfg,
		rules:  rules.GetEnabledRules(&cfg),
		units:  registry,
	}, nil
}

// Rules returns the enabled rules in evaluation order
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() Config {
	cfg := *e.config
	cfg.DisabledRules = append([]string(nil), e.config.DisabledRules...)
	return cfg
}

// Units returns the registry used for canonicalization
func (e *Engine) Units() *units.Registry {
	return e.units
}

// Normalize returns a canonicalized copy of rec together with every finding. The input
// tree is never modified. Fields that fail to canonicalize are copied unchanged and
// reported; callers must check report.HasErrors before trusting the copy.
func (e *Engine) Normalize(rec *reaction.Reaction) (*reaction.Reaction, *Report) {
	report := NewReport()
	if rec == nil {
		report.Add(emptyRecordFinding())
		return nil, report
	}
	out := rec.Clone()
	e.run(out, true, report)
	return out, report
}

// NormalizeDecoded is Normalize for a record fresh from the codec. Decoding issues are
// reported first.
func (e *Engine) NormalizeDecoded(rec *reaction.Reaction, issues codec.Issues) (*reaction.Reaction, *Report) {
	report := NewReport()
	report.AddDecodeIssues(issues)
	out, found := e.Normalize(rec)
	report.Merge(found)
	return out, report
}

// CheckInvariants validates rec without converting any units. Canonicalization failures
// are still reported, so the findings match those of Normalize.
func (e *Engine) CheckInvariants(rec *reaction.Reaction) *Report {
	report := NewReport()
	if rec == nil {
		report.Add(emptyRecordFinding())
		return report
	}
	e.run(rec, false, report)
	return report
}

// CanonicalizeMeasurement converts one measurement into its kind's canonical unit
func (e *Engine) CanonicalizeMeasurement(kind units.Kind, value, precision float64, unit int32) (units.Result, error) {
	return e.units.Canonicalize(kind, value, precision, unit)
}

func (e *Engine) run(rec *reaction.Reaction, mutate bool, report *Report) {
	w := &walker{
		ctx:    &Context{Units: e.units, Record: rec},
		rules:  e.rules,
		config: e.config,
		units:  e.units,
		mutate: mutate,
		report: report,
	}
	w.walk(rec)
}

func emptyRecordFinding() Finding {
	f := newFinding(KindRequiredFieldAbsent, reaction.Root(), "record is empty")
	f.Rule = traversalRuleName
	return f
}
