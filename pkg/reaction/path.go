package reaction

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type segmentKind uint8

const (
	segmentField segmentKind = iota
	segmentKey
	segmentIndex
)

// Segment is one step of a Path: a field name, a map key or a repeated index
type Segment struct {
	kind  segmentKind
	name  string
	index int
}

func (s Segment) IsField() bool { return s.kind == segmentField }
func (s Segment) IsKey() bool   { return s.kind == segmentKey }
func (s Segment) IsIndex() bool { return s.kind == segmentIndex }

// Name returns the field name or map key
func (s Segment) Name() string { return s.name }

// Index returns the repeated-field index
func (s Segment) Index() int { return s.index }

// Path locates a node inside a record, for example inputs["amine"].components[0].mass.
// Paths are immutable; every builder method returns a new Path.
type Path struct {
	segments []Segment
}

// Root returns the empty path that denotes the record itself
func Root() Path {
	return Path{}
}

func (p Path) with(s Segment) Path {
	segs := make([]Segment, len(p.segments)+1)
	copy(segs, p.segments)
	segs[len(p.segments)] = s
	return Path{segments: segs}
}

// Field appends a field name
func (p Path) Field(name string) Path {
	return p.with(Segment{kind: segmentField, name: name})
}

// Key appends a map key
func (p Path) Key(key string) Path {
	return p.with(Segment{kind: segmentKey, name: key})
}

// Index appends a repeated-field index
func (p Path) Index(i int) Path {
	return p.with(Segment{kind: segmentIndex, index: i})
}

// Segments returns a copy of the path's segments
func (p Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

func (p Path) Len() int {
	return len(p.segments)
}

func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// Equal reports whether two paths have the same segments
func (p Path) Equal(o Path) bool {
	if len(p.segments) != len(o.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != o.segments[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is an ancestor of (or equal to) p
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.segments) > len(p.segments) {
		return false
	}
	for i := range prefix.segments {
		if p.segments[i] != prefix.segments[i] {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	var b strings.Builder
	for i, s := range p.segments {
		switch s.kind {
		case segmentField:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.name)
		case segmentKey:
			b.WriteByte('[')
			b.WriteString(strconv.Quote(s.name))
			b.WriteByte(']')
		case segmentIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
		}
	}
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders the path as an RFC 6901 JSON pointer into the record's JSON form
func (p Path) Pointer() string {
	var b strings.Builder
	for _, s := range p.segments {
		b.WriteByte('/')
		if s.kind == segmentIndex {
			b.WriteString(strconv.Itoa(s.index))
			continue
		}
		b.WriteString(pointerEscaper.Replace(s.name))
	}
	return b.String()
}

func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Path) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePath(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePath parses the form produced by String
func ParsePath(s string) (Path, error) {
	p := Root()
	i := 0
	for i < len(s) {
		switch {
		case s[i] == '[':
			seg, next, err := parseBracket(s, i)
			if err != nil {
				return Path{}, err
			}
			p = p.with(seg)
			i = next
		case s[i] == '.' && i > 0:
			end := fieldEnd(s, i+1)
			if end == i+1 {
				return Path{}, fmt.Errorf("invalid path %q: empty field name at offset %d", s, i+1)
			}
			p = p.Field(s[i+1 : end])
			i = end
		case i == 0:
			end := fieldEnd(s, 0)
			if end == 0 {
				return Path{}, fmt.Errorf("invalid path %q: empty field name at offset 0", s)
			}
			p = p.Field(s[:end])
			i = end
		default:
			return Path{}, fmt.Errorf("invalid path %q: unexpected %q at offset %d", s, s[i], i)
		}
	}
	return p, nil
}

// fieldEnd stops at any path punctuation; a ']' or '"' there is then rejected by ParsePath
func fieldEnd(s string, start int) int {
	i := start
	for i < len(s) && !strings.ContainsRune(`.[]"`, rune(s[i])) {
		i++
	}
	return i
}

func parseBracket(s string, open int) (Segment, int, error) {
	rest := s[open+1:]
	if strings.HasPrefix(rest, `"`) {
		quoted, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return Segment{}, 0, fmt.Errorf("invalid path %q: bad map key at offset %d", s, open)
		}
		key, err := strconv.Unquote(quoted)
		if err != nil {
			return Segment{}, 0, fmt.Errorf("invalid path %q: bad map key at offset %d", s, open)
		}
		closeAt := open + 1 + len(quoted)
		if closeAt >= len(s) || s[closeAt] != ']' {
			return Segment{}, 0, fmt.Errorf("invalid path %q: unterminated map key at offset %d", s, open)
		}
		return Segment{kind: segmentKey, name: key}, closeAt + 1, nil
	}
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return Segment{}, 0, fmt.Errorf("invalid path %q: unterminated index at offset %d", s, open)
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil || n < 0 {
		return Segment{}, 0, fmt.Errorf("invalid path %q: bad index %q", s, rest[:end])
	}
	return Segment{kind: segmentIndex, index: n}, open + 1 + end + 1, nil
}
