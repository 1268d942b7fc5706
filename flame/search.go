package flame

import (
	"regexp"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/pyrelens/pkg"
)

// MatchMode selects how a [SearchPattern] is evaluated against frame names.
type MatchMode int

const (
	// ModeLiteral matches by substring containment.
	ModeLiteral MatchMode = iota
	// ModeRegex matches with a compiled regular expression, anywhere in the
	// name.
	ModeRegex
	// ModeFuzzy matches by character subsequence, ranked by
	// [github.com/sahilm/fuzzy]. Fuzzy matching is always case-insensitive.
	ModeFuzzy
)

// String returns the mode name as shown in the status line.
func (m MatchMode) String() string {
	switch m {
	case ModeLiteral:
		return "literal"
	case ModeRegex:
		return "regex"
	case ModeFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// SearchPattern is a compiled, stateless predicate over frame names.
//
// Patterns are reevaluated on demand during redraw rather than cached per
// frame: redraws are user-paced and graphs are bounded by distinct call
// paths, not sample volume.
type SearchPattern struct {
	// Text is the pattern source as entered.
	Text string
	// Mode selects literal, regex, or fuzzy evaluation.
	Mode MatchMode
	// CaseSensitive applies to literal and regex modes. For regex it is
	// implemented by prefixing the (?i) compilation flag when disabled.
	CaseSensitive bool
	// Manual records whether the pattern was typed by the user. Manual
	// patterns surface compile errors as transient messages; programmatic
	// patterns (search-selected) are valid by construction.
	Manual bool

	re     *regexp.Regexp
	folded string
}

// NewSearchPattern compiles a pattern. Literal and fuzzy modes never fail;
// regex compilation failure returns an error wrapping [pkg.ErrInvalidPattern]
// and the caller keeps its previous pattern.
func NewSearchPattern(
	text string,
	mode MatchMode,
	caseSensitive bool,
	manual bool,
) (*SearchPattern, error) {
	p := &SearchPattern{
		Text:          text,
		Mode:          mode,
		CaseSensitive: caseSensitive,
		Manual:        manual,
	}

	switch mode {
	case ModeRegex:
		src := text
		if !caseSensitive {
			src = "(?i)" + src
		}

		re, err := regexp.Compile(src)
		if err != nil {
			return nil, pkg.ErrInvalidPattern.Wrap(err)
		}

		p.re = re

	case ModeLiteral:
		if !caseSensitive {
			p.folded = strings.ToLower(text)
		}

	case ModeFuzzy:
		// No compilation step.
	}

	return p, nil
}

// Match reports whether the pattern matches the given frame name.
func (p *SearchPattern) Match(name string) bool {
	if p == nil {
		return false
	}

	switch p.Mode {
	case ModeRegex:
		return p.re.MatchString(name)

	case ModeFuzzy:
		return len(fuzzy.Find(p.Text, []string{name})) > 0

	default:
		if p.CaseSensitive {
			return strings.Contains(name, p.Text)
		}

		return strings.Contains(strings.ToLower(name), p.folded)
	}
}

// CountMatches returns the number of frames in the graph whose full name
// matches, along with their summed total count. Shown in the status line to
// size a search result before navigating it.
func (p *SearchPattern) CountMatches(g *Graph) (frames int, total uint64) {
	if p == nil || g == nil {
		return 0, 0
	}

	g.Walk(func(f *Frame, _ Stack, _ int) bool {
		if p.Match(f.Name) {
			frames++
			total += f.Total
		}

		return true
	})

	return frames, total
}
