package league

import "testing"

func TestNormalize_ResolvesAliases(t *testing.T) {
	t.Parallel()

	r := NewDefaultResolver()
	for _, input := range []string{"Premier League", "EPL", " epl ", "english premier league"} {
		if got := r.Normalize(input); got != "EPL" {
			t.Fatalf("Normalize(%q)=%q, want EPL", input, got)
		}
	}
	if got := r.Normalize("Libertadores"); got != "Copa Libertadores" {
		t.Fatalf("Normalize(Libertadores)=%q", got)
	}
}

func TestNormalize_UnknownPassesThroughTrimmed(t *testing.T) {
	t.Parallel()

	r := NewDefaultResolver()
	if got := r.Normalize("  Unknown XYZ League "); got != "Unknown XYZ League" {
		t.Fatalf("expected identity passthrough, got %q", got)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	t.Parallel()

	r := NewDefaultResolver()
	if got := r.Normalize(""); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
	if got := r.Normalize("   "); got != "" {
		t.Fatalf("expected empty result for blank input, got %q", got)
	}
}

func TestAliases_SortedManyToOne(t *testing.T) {
	t.Parallel()

	pairs := NewDefaultResolver().Aliases()
	if len(pairs) == 0 {
		t.Fatal("expected a non-empty alias table")
	}
	for i := 1; i < len(pairs); i++ {
		if pairs[i-1][0] >= pairs[i][0] {
			t.Fatalf("aliases not sorted at %d: %q >= %q", i, pairs[i-1][0], pairs[i][0])
		}
	}
}
