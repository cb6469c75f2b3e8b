// Package validation canonicalizes and checks reaction records.
//
// # Overview
//
// The Engine walks a record once, depth first in declaration order, visiting map
// entries in sorted key order. Each node is shown to every enabled Rule before its
// children are visited, and every quantity is canonicalized through the units
// registry as it is passed. Rules always see the value as written.
//
// Two entry points share the walk:
//
//   - Normalize returns a canonicalized deep copy plus a Report
//   - CheckInvariants returns the Report only and never touches the record
//
// Neither fails as a whole on a bad record. Every problem becomes a Finding
// with a path, a kind and a fixed severity.
//
// # Finding Kinds
//
// Errors:
//   - CanonicalizationFailed: unit or precision could not be canonicalized
//   - MissingDetails: CUSTOM enum without details
//   - OneofMismatch: more than one alternative set, or the wrong alternative
//   - DanglingReference: product cites an analysis key that does not exist
//   - RequiredFieldAbsent
//   - ValueOutOfRange
//   - MalformedValue
//   - InconsistentRecord
//   - TreeTooLarge: the walk stopped at the depth or node limit
//
// Warnings:
//   - ExtraneousDetails
//   - OrderingWarning: addition order disagrees with addition time
//   - RecommendedFieldAbsent
//   - SuspiciousValue
//
// # Usage Example
//
//	engine, err := validation.NewEngine(nil)
//	if err != nil {
//		return err
//	}
//
//	canonical, report := engine.Normalize(rec)
//	if report.HasErrors() {
//		for _, f := range report.Errors() {
//			fmt.Println(f)
//		}
//	}
//
// Rules can be disabled by name through Config.DisabledRules, or replaced by
// registering a Rule with the same name in a RuleRegistry passed to
// NewEngineWithRules.
//
// # Related Packages
//
//   - pkg/units: unit tables and canonicalization
//   - pkg/codec: decoding records and collecting decode issues
package validation
