package validation

import "sort"

// RuleRegistry manages the available rules. Rules run in registration order.
type RuleRegistry struct {
	rules map[string]Rule
	order []string
}

// NewRuleRegistry creates an empty registry
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{
		rules: make(map[string]Rule),
	}
}

// DefaultRuleRegistry returns a registry holding every built-in rule
func DefaultRuleRegistry() *RuleRegistry {
	registry := NewRuleRegistry()
	registry.Register(NewCustomDetailsRule())
	registry.Register(NewOneofRule())
	registry.Register(NewAnalysisReferencesRule())
	registry.Register(NewAdditionOrderingRule())
	registry.Register(NewRequiredPresenceRule())
	registry.Register(NewMeasurementRangeRule())
	registry.Register(NewWorkupRequirementsRule())
	registry.Register(NewOutcomeConsistencyRule())
	registry.Register(NewReactionConsistencyRule())
	registry.Register(NewProvenanceRule())
	registry.Register(NewMapKeysRule())
	return registry
}

// Register adds a rule, replacing any rule with the same name in place
func (r *RuleRegistry) Register(rule Rule) {
	if _, exists := r.rules[rule.Name()]; !exists {
		r.order = append(r.order, rule.Name())
	}
	r.rules[rule.Name()] = rule
}

// GetRule retrieves a rule by name
func (r *RuleRegistry) GetRule(name string) (Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// GetAllRules returns all registered rules in registration order
func (r *RuleRegistry) GetAllRules() []Rule {
	rules := make([]Rule, 0, len(r.order))
	for _, name := range r.order {
		rules = append(rules, r.rules[name])
	}
	return rules
}

// GetEnabledRules returns the rules not disabled by config
func (r *RuleRegistry) GetEnabledRules(config *Config) []Rule {
	if config == nil || len(config.DisabledRules) == 0 {
		return r.GetAllRules()
	}
	disabled := make(map[string]bool, len(config.DisabledRules))
	for _, name := range config.DisabledRules {
		disabled[name] = true
	}
	rules := make([]Rule, 0, len(r.order))
	for _, name := range r.order {
		if !disabled[name] {
			rules = append(rules, r.rules[name])
		}
	}
	return rules
}

// Names returns the registered rule names, sorted
func (r *RuleRegistry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}
