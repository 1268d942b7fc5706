package flame

import (
	"errors"
	"testing"

	"github.com/ardnew/pyrelens/pkg"
)

func TestRowFilter_Keep(t *testing.T) {
	rows := []Row{
		{Name: "read", Self: 10, Total: 40, Ratio: 0.4},
		{Name: "write", Self: 1, Total: 5, Ratio: 0.05},
		{Name: "idle", Self: 55, Total: 55, Ratio: 0.55},
	}

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{
			name: "self threshold",
			expr: "self > 5",
			want: []string{"read", "idle"},
		},
		{
			name: "name containment",
			expr: `contains(name, "r")`,
			want: []string{"read", "write"},
		},
		{
			name: "ratio and name",
			expr: `ratio >= 0.4 && name != "idle"`,
			want: []string{"read"},
		},
		{
			name: "keep all",
			expr: "true",
			want: []string{"read", "write", "idle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewRowFilter(tt.expr)
			if err != nil {
				t.Fatalf("NewRowFilter(%q): %v", tt.expr, err)
			}

			kept := FilterRows(rows, f)

			var names []string
			for _, r := range kept {
				names = append(names, r.Name)
			}

			if len(names) != len(tt.want) {
				t.Fatalf("kept %v, want %v", names, tt.want)
			}

			for i := range names {
				if names[i] != tt.want[i] {
					t.Errorf("kept[%d] = %q, want %q", i, names[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewRowFilter_Invalid(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"syntax error", "self >"},
		{"not boolean", "self + 1"},
		{"unknown identifier", "bogus > 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewRowFilter(tt.expr)
			if err == nil {
				t.Fatalf("NewRowFilter(%q) succeeded, want error", tt.expr)
			}

			if !errors.Is(err, pkg.ErrInvalidFilter) {
				t.Errorf("error = %v, want wrapping pkg.ErrInvalidFilter", err)
			}

			if f != nil {
				t.Errorf("filter = %+v, want nil on compile failure", f)
			}
		})
	}
}

func TestFilterRows_NilFilter(t *testing.T) {
	rows := []Row{{Name: "a"}, {Name: "b"}}

	if got := FilterRows(rows, nil); len(got) != len(rows) {
		t.Errorf("nil filter kept %d rows, want %d", len(got), len(rows))
	}
}
