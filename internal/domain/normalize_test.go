package domain

import "testing"

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  sales  ", want: "sales"},
		{name: "lowercase", input: "Sales Team", want: "sales team"},
		{name: "compress multiple spaces", input: "sales   team", want: "sales team"},
		{name: "tabs become spaces", input: "sales\t\tteam", want: "sales team"},
		{name: "email", input: " Jane.Doe@Example.COM ", want: "jane.doe@example.com"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "unicode", input: "Équipe Nord", want: "équipe nord"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeKey(tt.input); got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
