package schedule

import (
	"testing"
	"time"
)

func TestMinutesFromWindowStart(t *testing.T) {
	cases := []struct {
		label   string
		minutes int
	}{
		{label: "08:00", minutes: 0},
		{label: "09:00", minutes: 60},
		{label: "09:40", minutes: 100},
		{label: "12:20", minutes: 260},
		{label: "17:00", minutes: 540},
	}

	for _, c := range cases {
		got, err := MinutesFromWindowStart(c.label)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.label, err)
		}
		if got != c.minutes {
			t.Fatalf("%s: expected %d, got %d", c.label, c.minutes, got)
		}
	}
}

func TestMinutesFromWindowStart_Malformed(t *testing.T) {
	for _, label := range []string{"", "9:00", "09.00", "25:00", "09:61", "aa:bb", "09:000"} {
		if _, err := MinutesFromWindowStart(label); err == nil {
			t.Fatalf("expected error for label %q", label)
		}
	}
}

func TestPixelOffsetRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 15, 60, 100, TotalGridMinutes} {
		y := PixelOffset(minutes)
		if back := MinutesFromPixel(y); back != minutes {
			t.Fatalf("minutes %d: round trip gave %d", minutes, back)
		}
	}
}

func TestSnapToGrid(t *testing.T) {
	cases := []struct {
		rawY    int
		snapped int
	}{
		{rawY: 0, snapped: 0},
		{rawY: 14, snapped: 0},
		{rawY: 15, snapped: 30},
		{rawY: 29, snapped: 30},
		{rawY: 31, snapped: 30},
		{rawY: 44, snapped: 30},
		{rawY: 46, snapped: 60},
		{rawY: 205, snapped: 210},
		{rawY: -50, snapped: 0},
		{rawY: GridHeight + 999, snapped: GridHeight},
	}

	for _, c := range cases {
		got := SnapToGrid(c.rawY, SnapStepPixels)
		if got != c.snapped {
			t.Fatalf("rawY %d: expected %d, got %d", c.rawY, c.snapped, got)
		}
		if got%SnapStepPixels != 0 {
			t.Fatalf("rawY %d: %d is not a multiple of %d", c.rawY, got, SnapStepPixels)
		}
		if got < 0 || got > GridHeight {
			t.Fatalf("rawY %d: %d outside [0, %d]", c.rawY, got, GridHeight)
		}
	}
}

func TestDefaultSlotsAlignedToCadence(t *testing.T) {
	prev := 0
	for i, label := range DefaultSlots {
		m, err := MinutesFromWindowStart(label)
		if err != nil {
			t.Fatalf("fixed slot %q failed to parse: %v", label, err)
		}
		if i > 0 && m-prev != SlotCadenceMin {
			t.Fatalf("slot %q breaks the %d-minute cadence", label, SlotCadenceMin)
		}
		prev = m
	}
}

func TestTimeAtMinutes(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	got := TimeAtMinutes(date, 100) // 08:00 + 100min = 09:40
	if got.Hour() != 9 || got.Minute() != 40 {
		t.Fatalf("expected 09:40, got %s", got.Format("15:04"))
	}
	if got.Location() != loc {
		t.Fatalf("expected location preserved")
	}
}

func TestLabelTimeOn(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	got, err := LabelTimeOn(date, "14:20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if SlotLabelAt(got) != "14:20" {
		t.Fatalf("expected 14:20, got %s", SlotLabelAt(got))
	}

	if _, err := LabelTimeOn(date, "garbage"); err == nil {
		t.Fatalf("expected error for malformed label")
	}
}

func TestLabelTimeOnRejectsNonDigits(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// Labels de 5 bytes com ':' no lugar certo mas bytes não numéricos.
	bad := []string{"09:0x", "0x:00", "x9:00", "09:x0", "9h:00", "24:00", "09:60"}
	for _, label := range bad {
		if _, err := LabelTimeOn(date, label); err == nil {
			t.Fatalf("expected error for label %q", label)
		}
	}
}
