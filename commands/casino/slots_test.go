package casino

import "testing"

func TestSpinIsDeterministicWithFixedSource(t *testing.T) {
	fixed := func(n int) int { return 0 }
	got := spin(fixed)
	want := [3]string{"🍒", "🍒", "🍒"}
	if got != want {
		t.Errorf("spin = %v, want %v", got, want)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		symbols [3]string
		want    float64
	}{
		{"triple cherries", [3]string{"🍒", "🍒", "🍒"}, 4},
		{"triple diamonds", [3]string{"💎", "💎", "💎"}, 100},
		{"triple bells", [3]string{"🔔", "🔔", "🔔"}, 25},
		{"two cherries", [3]string{"🍒", "🍋", "🍒"}, 1.5},
		{"one cherry", [3]string{"🍒", "🍋", "🍇"}, 0},
		{"nothing", [3]string{"🍋", "🍇", "🔔"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := score(tt.symbols); got != tt.want {
				t.Errorf("score(%v) = %v, want %v", tt.symbols, got, tt.want)
			}
		})
	}
}

func TestEverySymbolHasAPayout(t *testing.T) {
	for _, sym := range reel {
		if _, ok := payouts[sym]; !ok {
			t.Errorf("reel symbol %s has no payout entry", sym)
		}
	}
}
