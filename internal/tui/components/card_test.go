package components

import (
	"strings"
	"testing"
)

func TestLayoutRowSumsExactly(t *testing.T) {
	cases := []struct {
		total, n int
	}{
		{100, 4},
		{101, 4},
		{103, 3},
		{7, 2},
	}
	for _, c := range cases {
		widths := LayoutRow(c.total, c.n)
		if len(widths) != c.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", c.total, c.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != c.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d, want %d", c.total, c.n, sum, c.total)
		}
	}
}

func TestLayoutRowZeroItems(t *testing.T) {
	if got := LayoutRow(100, 0); got != nil {
		t.Errorf("LayoutRow(100, 0) = %v, want nil", got)
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	short := ContentCard("Short", "Content", 22)
	tall := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(short, "\n"))
	tallLines := len(strings.Split(tall, "\n"))
	if shortLines >= tallLines {
		t.Fatal("test setup: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tall, short})
	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Errorf("joined height = %d, want %d (tallest card)", got, tallLines)
	}
}

func TestCardInnerWidth(t *testing.T) {
	if got := CardInnerWidth(40); got != 36 {
		t.Errorf("CardInnerWidth(40) = %d, want 36", got)
	}
	if got := CardInnerWidth(5); got != 10 {
		t.Errorf("CardInnerWidth(5) = %d, want floor of 10", got)
	}
}

func TestTabVisualWidth(t *testing.T) {
	tab := Tab{Name: "Forecast", Key: 'f', KeyPos: 0}
	if got := TabVisualWidth(tab, true); got != len("Forecast") {
		t.Errorf("active width = %d, want %d", got, len("Forecast"))
	}
	if got := TabVisualWidth(tab, false); got != len("Forecast")+2 {
		t.Errorf("inactive width = %d, want %d", got, len("Forecast")+2)
	}

	noKey := Tab{Name: "Misc", Key: 'x', KeyPos: -1}
	if got := TabVisualWidth(noKey, false); got != len("Misc")+3 {
		t.Errorf("inactive width with appended key = %d, want %d", got, len("Misc")+3)
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}
