package components

import "testing"

func TestChartMoneyLabel(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{2_000_000, "$2M"},
		{1_500_000, "$1.5M"},
		{5000, "$5k"},
		{4200, "$4.2k"},
		{850, "$850"},
		{0.5, "$0.50"},
	}
	for _, c := range cases {
		if got := chartMoneyLabel(c.v); got != c.want {
			t.Errorf("chartMoneyLabel(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestChartTickStep(t *testing.T) {
	cases := []struct {
		maxVal, want float64
	}{
		{10, 2},
		{100, 20},
		{500, 100},
		{18000, 5000},
		{0, 1},
	}
	for _, c := range cases {
		if got := chartTickStep(c.maxVal); got != c.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", c.maxVal, got, c.want)
		}
	}
}

func TestSparklineScalesMinToMax(t *testing.T) {
	// A flat-but-high series should not render as all-max blocks; the
	// lowest point maps to the lowest block and the highest to the top.
	s := Sparkline([]float64{9000, 9100, 9050, 9200}, "")
	if s == "" {
		t.Fatal("Sparkline returned empty string")
	}
	runes := []rune(stripANSI(s))
	if len(runes) != 4 {
		t.Fatalf("sparkline length = %d, want 4", len(runes))
	}
	if runes[0] != '▁' {
		t.Errorf("lowest value rendered %q, want %q", runes[0], '▁')
	}
	if runes[3] != '█' {
		t.Errorf("highest value rendered %q, want %q", runes[3], '█')
	}
}

func TestSparklineEmpty(t *testing.T) {
	if got := Sparkline(nil, ""); got != "" {
		t.Errorf("Sparkline(nil) = %q, want empty", got)
	}
}

// stripANSI removes escape sequences so tests can inspect glyphs directly.
func stripANSI(s string) string {
	var out []rune
	inEsc := false
	for _, r := range s {
		switch {
		case inEsc:
			if r == 'm' {
				inEsc = false
			}
		case r == '\x1b':
			inEsc = true
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
