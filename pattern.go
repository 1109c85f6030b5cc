package replica

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Flags is the flag set of a Pattern.
type Flags uint8

// Pattern flags, rendered in this order by Flags.String.
const (
	FlagGlobal     Flags = 1 << iota // g: Exec resumes from LastIndex
	FlagIgnoreCase                   // i
	FlagMultiline                    // m: ^ and $ match at line breaks
	FlagDotAll                       // s: . matches line breaks
	FlagSticky                       // y: matches must start exactly at LastIndex
)

var flagLetters = []struct {
	flag   Flags
	letter byte
}{
	{FlagGlobal, 'g'},
	{FlagIgnoreCase, 'i'},
	{FlagMultiline, 'm'},
	{FlagDotAll, 's'},
	{FlagSticky, 'y'},
}

// ParseFlags parses a flag string such as "gi". Unknown or repeated
// letters are rejected.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for i := 0; i < len(s); i++ {
		matched := false
		for _, fl := range flagLetters {
			if s[i] != fl.letter {
				continue
			}
			if f&fl.flag != 0 {
				return 0, newCodedError(ErrInvalidPattern, "ERR::PAT::FLAG", "duplicate flag %q", s[i])
			}
			f |= fl.flag
			matched = true
		}
		if !matched {
			return 0, newCodedError(ErrInvalidPattern, "ERR::PAT::FLAG", "unknown flag %q", s[i])
		}
	}
	return f, nil
}

func (f Flags) String() string {
	var b strings.Builder
	for _, fl := range flagLetters {
		if f&fl.flag != 0 {
			b.WriteByte(fl.letter)
		}
	}
	return b.String()
}

// options maps the flag set onto engine options.
func (f Flags) options() regexp2.RegexOptions {
	opts := regexp2.None
	if f&FlagIgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if f&FlagMultiline != 0 {
		opts |= regexp2.Multiline
	}
	if f&FlagDotAll != 0 {
		opts |= regexp2.Singleline
	}
	return opts
}

// Pattern is a compiled text-matching expression with its flags and a
// match-progress cursor. Offsets are in runes.
type Pattern struct {
	Attributes
	source    string
	flags     Flags
	re        *regexp2.Regexp
	lastIndex int
}

// Match is one successful Exec.
type Match struct {
	Index  int      // rune offset of the match
	Text   string   // matched text
	Groups []string // capture groups, excluding the whole match
}

// NewPattern compiles source with flags.
func NewPattern(source string, flags Flags) (*Pattern, error) {
	re, err := regexp2.Compile(source, flags.options())
	if err != nil {
		return nil, &CodedError{
			Code:    "ERR::PAT::INV",
			Message: "invalid pattern /" + source + "/: " + err.Error(),
			Err:     ErrInvalidPattern,
		}
	}
	return &Pattern{source: source, flags: flags, re: re}, nil
}

// MustPattern is like NewPattern but panics when source does not compile.
func MustPattern(source string, flags Flags) *Pattern {
	p, err := NewPattern(source, flags)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the textual pattern.
func (p *Pattern) Source() string { return p.source }

// Flags returns the flag set.
func (p *Pattern) Flags() Flags { return p.flags }

// Global reports whether the g flag is set.
func (p *Pattern) Global() bool { return p.flags&FlagGlobal != 0 }

// IgnoreCase reports whether the i flag is set.
func (p *Pattern) IgnoreCase() bool { return p.flags&FlagIgnoreCase != 0 }

// Multiline reports whether the m flag is set.
func (p *Pattern) Multiline() bool { return p.flags&FlagMultiline != 0 }

// LastIndex returns the match-progress cursor.
func (p *Pattern) LastIndex() int { return p.lastIndex }

// SetLastIndex moves the match-progress cursor.
func (p *Pattern) SetLastIndex(i int) { p.lastIndex = i }

// Exec finds the next match in s. Global and sticky patterns start at
// LastIndex and advance it past the match, resetting it to 0 when nothing
// matches. A nil Match with a nil error means no match.
func (p *Pattern) Exec(s string) (*Match, error) {
	stateful := p.flags&(FlagGlobal|FlagSticky) != 0
	start := 0
	if stateful {
		start = p.lastIndex
		runes := []rune(s)
		if start < 0 || start > len(runes) {
			p.lastIndex = 0
			return nil, nil
		}
		// The engine takes a byte offset but reports rune offsets.
		s = string(runes)
		start = len(string(runes[:start]))
	}

	m, err := p.re.FindStringMatchStartingAt(s, start)
	if err != nil {
		return nil, err
	}
	if m == nil || (p.flags&FlagSticky != 0 && m.Index != p.lastIndex) {
		if stateful {
			p.lastIndex = 0
		}
		return nil, nil
	}

	if stateful {
		p.lastIndex = m.Index + m.Length
	}

	groups := m.Groups()
	out := &Match{Index: m.Index, Text: m.String()}
	for _, g := range groups[1:] {
		out.Groups = append(out.Groups, g.String())
	}
	return out, nil
}

// Test reports whether s contains a match, advancing LastIndex like Exec.
func (p *Pattern) Test(s string) (bool, error) {
	m, err := p.Exec(s)
	return m != nil, err
}

func (p *Pattern) String() string {
	return "/" + p.source + "/" + p.flags.String()
}
