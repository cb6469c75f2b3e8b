package reaction

import "strconv"

// Enum is implemented by every schema enumeration
type Enum interface {
	~int32
	String() string
	Names() []string
}

// CustomEnum is an enumeration with a CUSTOM enumerant. CUSTOM is always number 1.
type CustomEnum interface {
	Enum
	IsCustom() bool
}

const customNumber = 1

// Choice is an enumerated value that may be CUSTOM. A CUSTOM choice carries the free-text
// details that explain it; a known choice normally carries none.
type Choice[E CustomEnum] struct {
	value   E
	details string
}

// Known returns a choice holding a non-custom enumerant
func Known[E CustomEnum](v E) Choice[E] {
	return Choice[E]{value: v}
}

// Custom returns a CUSTOM choice with its mandatory details
func Custom[E CustomEnum](details string) Choice[E] {
	return Choice[E]{value: E(customNumber), details: details}
}

// NewChoice reproduces a choice exactly as it appeared on the wire, including combinations
// the invariant checker reports (CUSTOM without details, details on a known value).
func NewChoice[E CustomEnum](v E, details string) Choice[E] {
	return Choice[E]{value: v, details: details}
}

func (c Choice[E]) Value() E {
	return c.value
}

func (c Choice[E]) Details() string {
	return c.details
}

func (c Choice[E]) IsCustom() bool {
	return c.value.IsCustom()
}

// IsUnspecified reports whether the choice holds the zero enumerant
func (c Choice[E]) IsUnspecified() bool {
	return c.value == 0
}

func (c Choice[E]) String() string {
	if c.details == "" {
		return c.value.String()
	}
	return c.value.String() + " (" + c.details + ")"
}

func enumString(names []string, n int32) string {
	if n >= 0 && int(n) < len(names) {
		return names[n]
	}
	return strconv.Itoa(int(n))
}

// ParseEnum resolves an enumerant name or decimal number. Numbers outside the declared
// range are accepted verbatim so callers can report them.
func ParseEnum[E Enum](s string) (E, bool) {
	var zero E
	for i, name := range zero.Names() {
		if name == s {
			return E(i), true
		}
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return zero, false
	}
	return E(n), true
}

// IsDefined reports whether e is one of its enumeration's declared values
func IsDefined[E Enum](e E) bool {
	return e >= 0 && int(e) < len(e.Names())
}
