package hours

import (
	"testing"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
)

func TestPackUnpack_RoundTrip(t *testing.T) {
	t.Parallel()

	// every representable value in every slot
	for tenths := 0; tenths <= 240; tenths++ {
		v := float64(tenths) / 10
		in := [domain.DaysInWeek]float64{v, v, v, v, v, v, v}
		out := Unpack(Pack(in))
		for d := 0; d < domain.DaysInWeek; d++ {
			if out[d] != v {
				t.Fatalf("round trip lost %v on day %d: got %v", v, d, out[d])
			}
		}
	}
}

func TestPack_DayOrdering(t *testing.T) {
	t.Parallel()

	in := [domain.DaysInWeek]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7}
	packed := Pack(in)

	// Saturday is the least significant byte
	for d := 0; d < domain.DaysInWeek; d++ {
		b := (packed >> (d * 8)) & 0xFF
		if b != uint64(d+1) {
			t.Fatalf("day %d packed as %d, want %d", d, b, d+1)
		}
	}
	if packed>>56 != 0 {
		t.Fatalf("high byte should be unused, got packed=%x", packed)
	}
}

func TestPack_ClampsOutOfRange(t *testing.T) {
	t.Parallel()

	in := [domain.DaysInWeek]float64{30, -5, 24, 0, 23.94, 23.96, 8.25}
	out := Unpack(Pack(in))

	want := [domain.DaysInWeek]float64{24, 0, 24, 0, 23.9, 24, 8.3}
	for d := 0; d < domain.DaysInWeek; d++ {
		if out[d] != want[d] {
			t.Fatalf("day %d: got %v, want %v", d, out[d], want[d])
		}
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{12.5, 12.5},
		{24, 24},
		{24.1, 24},
		{1000, 24},
	}
	for _, c := range cases {
		if got := Clamp(c.in); got != c.want {
			t.Errorf("Clamp(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRound(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{8.24, 8.2},
		{8.25, 8.3},
		{8.26, 8.3},
		{23.99, 24},
	}
	for _, c := range cases {
		if got := Round(c.in); got != c.want {
			t.Errorf("Round(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
