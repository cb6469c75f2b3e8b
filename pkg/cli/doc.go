// Package cli implements the ordcheck command-line tool.
//
// Commands:
//
//	ordcheck validate [-format f] [-output text|json] FILE|DIR|- ...
//	ordcheck normalize [-to json|yaml|proto] [-o out] [-force] FILE|-
//	ordcheck import [-dir DIR] [-workers n] [-mode normalize|validate] [-store-rejected] [-dry-run]
//	ordcheck watch [-dir DIR] [-debounce d] [-existing] [-dry-run]
//	ordcheck serve [-port p] [-log-level l]
//	ordcheck units [-precision p] [KIND [VALUE UNIT]]
//
// Every command except units reads its settings through pkg/config, so -config and the
// ORDCHECK_* environment apply. validate and normalize return ErrRejected when a record
// has errors or cannot be decoded; cmd/ordcheck turns that into exit status 2.
package cli
