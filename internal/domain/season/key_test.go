package season

import "testing"

func TestOrderKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key  string
		want int
	}{
		{"2024", 2024},
		{"1999", 1999},
		{" 2024 ", 2024},
		{"24/25", 2025},
		{"99/00", 2000},
		{"29/30", 2030},
		{"30/31", 1931},
		{"31/32", 1932},
		{"737", 737},
		{"not-a-season", UnknownOrder},
		{"", UnknownOrder},
	}
	for _, tc := range cases {
		if got := OrderKey(tc.key); got != tc.want {
			t.Fatalf("OrderKey(%q)=%d, want %d", tc.key, got, tc.want)
		}
	}
}

func TestLatest(t *testing.T) {
	t.Parallel()

	key, ok := Latest([]string{"2023", "24/25", "2024", "garbage"})
	if !ok || key != "24/25" {
		t.Fatalf("Latest=%q ok=%v, want 24/25", key, ok)
	}

	if _, ok := Latest(nil); ok {
		t.Fatal("Latest of empty input must report not found")
	}
}

func TestSortDescending(t *testing.T) {
	t.Parallel()

	keys := []string{"garbage", "24/25", "2023", "99/00"}
	SortDescending(keys)

	want := []string{"24/25", "2023", "99/00", "garbage"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("sorted=%v, want %v", keys, want)
		}
	}
}
