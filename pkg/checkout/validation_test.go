package checkout

import "testing"

func TestValidCardNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  bool
	}{
		{"4111111111111111", true},
		{"4111 1111 1111 1111", true},
		{"4111\t1111 1111  1111", true},
		{" 4111111111111111 ", true},
		{"4111-1111-1111-1111", false},
		{"411111111111111", false},
		{"41111111111111111", false},
		{"4111 1111 1111 111a", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidCardNumber(tc.input); got != tc.want {
			t.Fatalf("ValidCardNumber(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestValidExpiration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  bool
	}{
		{"01/26", true},
		{"12/99", true},
		{"04/27", true},
		{"00/27", false},
		{"13/27", false},
		{"4/27", false},
		{"04-27", false},
		{"04/2027", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidExpiration(tc.input); got != tc.want {
			t.Fatalf("ValidExpiration(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestValidCVV(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  bool
	}{
		{"123", true},
		{"1234", true},
		{"12", false},
		{"12345", false},
		{"12a", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidCVV(tc.input); got != tc.want {
			t.Fatalf("ValidCVV(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCardLast4(t *testing.T) {
	t.Parallel()

	if got := CardLast4("4111 1111 1111 1111"); got != "1111" {
		t.Fatalf("expected 1111, got %q", got)
	}
	if got := CardLast4("5500 0000 0000 4242"); got != "4242" {
		t.Fatalf("expected 4242, got %q", got)
	}
	if got := CardLast4("99"); got != "99" {
		t.Fatalf("short input should pass through, got %q", got)
	}
}
