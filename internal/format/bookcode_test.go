package format

import "testing"

func TestBookDisplayCode(t *testing.T) {
	tests := []struct {
		name      string
		primary   string
		secondary string
		want      string
	}{
		{"full book JAN", "JAN1", "1920094001600", "JAN1 C0094 ¥16"},
		{"twelve characters is enough", "JAN1", "192009400160", "JAN1 C0094 ¥16"},
		{"too short falls back", "JAN1", "19200940016", "JAN1"},
		{"empty secondary falls back", "JAN1", "", "JAN1"},
		{"empty primary stays empty", "", "1920094001600", ""},
		{"non-numeric price falls back", "JAN1", "1920094X01600", "JAN1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BookDisplayCode(tt.primary, tt.secondary); got != tt.want {
				t.Errorf("BookDisplayCode(%q, %q) = %q, want %q",
					tt.primary, tt.secondary, got, tt.want)
			}
		})
	}
}

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		total int64
		qty   int
		want  int64
	}{
		{1200, 2, 600},
		{1000, 3, 333}, // integer division
		{500, 1, 500},
		{500, 0, 500}, // zero quantity shows the raw total
	}

	for _, tt := range tests {
		if got := unitPrice(tt.total, tt.qty); got != tt.want {
			t.Errorf("unitPrice(%d, %d) = %d, want %d", tt.total, tt.qty, got, tt.want)
		}
	}
}
