package codec

import (
	"fmt"
	"strings"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

// IssueCode classifies a problem found while converting wire input into a record
type IssueCode string

const (
	// IssueAmbiguousOneof means more than one branch of a oneof was populated
	IssueAmbiguousOneof IssueCode = "ambiguous_oneof"
	// IssueUnknownEnum means an enumerant name is not part of its enumeration
	IssueUnknownEnum IssueCode = "unknown_enum"
)

// Issue is a non-fatal decoding problem. The record is still produced.
type Issue struct {
	Code    IssueCode
	Path    reaction.Path
	Message string
}

// Issues is the list of problems found while decoding one record
type Issues []Issue

func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(iss)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}
