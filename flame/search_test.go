package flame

import (
	"errors"
	"testing"

	"github.com/ardnew/pyrelens/pkg"
)

func TestSearchPattern_Match(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		mode          MatchMode
		caseSensitive bool
		target        string
		want          bool
	}{
		{"literal substring", "abc", ModeLiteral, true, "xxabcxx", true},
		{"literal case mismatch", "ABC", ModeLiteral, true, "xxabcxx", false},
		{"literal insensitive", "ABC", ModeLiteral, false, "xxabcxx", true},
		{"literal absent", "abc", ModeLiteral, true, "xyz", false},
		{"regex anywhere", "b.c", ModeRegex, true, "aabxcaa", true},
		{"regex case mismatch", "B.C", ModeRegex, true, "aabxcaa", false},
		{"regex insensitive flag", "B.C", ModeRegex, false, "aabxcaa", true},
		{"fuzzy subsequence", "rdln", ModeFuzzy, false, "readline", true},
		{"fuzzy absent", "zq", ModeFuzzy, false, "readline", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewSearchPattern(tt.text, tt.mode, tt.caseSensitive, true)
			if err != nil {
				t.Fatalf("NewSearchPattern: %v", err)
			}

			if got := p.Match(tt.target); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestNewSearchPattern_InvalidRegex(t *testing.T) {
	p, err := NewSearchPattern("(", ModeRegex, true, true)
	if err == nil {
		t.Fatal("expected error for invalid regex")
	}

	if !errors.Is(err, pkg.ErrInvalidPattern) {
		t.Errorf("error = %v, want wrapping pkg.ErrInvalidPattern", err)
	}

	if p != nil {
		t.Errorf("pattern = %+v, want nil on compile failure", p)
	}
}

func TestNewSearchPattern_LiteralNeverFails(t *testing.T) {
	// Regex metacharacters are inert in literal mode.
	p, err := NewSearchPattern("(", ModeLiteral, true, true)
	if err != nil {
		t.Fatalf("literal compile failed: %v", err)
	}

	if !p.Match("f(x)") {
		t.Error("literal '(' should match name containing a paren")
	}
}

func TestSearchPattern_NilMatchesNothing(t *testing.T) {
	var p *SearchPattern

	if p.Match("anything") {
		t.Error("nil pattern must not match")
	}
}

func TestSearchPattern_CountMatches(t *testing.T) {
	g := ParseString("a;read 2\na;write 3\nb;read 5\n")

	p, err := NewSearchPattern("read", ModeLiteral, true, false)
	if err != nil {
		t.Fatalf("NewSearchPattern: %v", err)
	}

	frames, total := p.CountMatches(g)
	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}

	if total != 7 {
		t.Errorf("total = %d, want 7", total)
	}
}
