package rng_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/bytefuzz/internal/rng"
)

func Test_Stream_Is_Deterministic_When_Seeds_Match(t *testing.T) {
	t.Parallel()

	a := rng.New(42)
	b := rng.New(42)

	for i := range 1000 {
		if got, want := a.Percent(), b.Percent(); got != want {
			t.Fatalf("draw %d: percent=%d, want=%d", i, got, want)
		}

		if got, want := a.Byte(), b.Byte(); got != want {
			t.Fatalf("draw %d: byte=%d, want=%d", i, got, want)
		}
	}
}

func Test_Stream_Diverges_When_Seeds_Differ(t *testing.T) {
	t.Parallel()

	a := rng.New(1)
	b := rng.New(2)

	same := 0

	for range 64 {
		if a.Byte() == b.Byte() {
			same++
		}
	}

	if same == 64 {
		t.Fatal("streams with different seeds produced identical bytes")
	}
}

func Test_Stream_Percent_Stays_In_Range(t *testing.T) {
	t.Parallel()

	s := rng.New(7)
	seen := make(map[int]bool)

	for range 100_000 {
		p := s.Percent()
		if p < 0 || p >= 100 {
			t.Fatalf("percent=%d out of [0,100)", p)
		}

		seen[p] = true
	}

	if got, want := len(seen), 100; got != want {
		t.Errorf("distinct percents=%d, want=%d", got, want)
	}
}

func Test_Stream_Byte_Covers_Full_Range(t *testing.T) {
	t.Parallel()

	s := rng.New(9)
	seen := make(map[byte]bool)

	for range 100_000 {
		seen[s.Byte()] = true
	}

	if got, want := len(seen), 256; got != want {
		t.Errorf("distinct bytes=%d, want=%d", got, want)
	}
}

func Test_Stream_Chance_Matches_Percent_Roll(t *testing.T) {
	t.Parallel()

	a := rng.New(3)
	b := rng.New(3)

	for range 500 {
		if got, want := a.Chance(13), b.Percent() < 13; got != want {
			t.Fatalf("chance=%v, want=%v", got, want)
		}
	}
}

func Test_Stream_Chance_Is_Never_True_When_Percent_Is_Zero(t *testing.T) {
	t.Parallel()

	s := rng.New(11)

	for range 1000 {
		if s.Chance(0) {
			t.Fatal("chance(0) returned true")
		}
	}
}

func Test_Stream_Seed_Returns_Construction_Value(t *testing.T) {
	t.Parallel()

	if got, want := rng.New(-5).Seed(), int64(-5); got != want {
		t.Errorf("seed=%d, want=%d", got, want)
	}
}

// The recorded draws below fix the stream across releases. A change here
// changes every fuzz stream produced from a given seed.
func Test_Stream_Produces_Recorded_Draws_When_Seed_Is_Fixed(t *testing.T) {
	t.Parallel()

	percents := rng.New(42)

	var gotPercents []int
	for range 8 {
		gotPercents = append(gotPercents, percents.Percent())
	}

	if diff := cmp.Diff([]int{85, 96, 13, 8, 18, 96, 92, 36}, gotPercents); diff != "" {
		t.Errorf("seed 42 percents (-want +got):\n%s", diff)
	}

	bytesStream := rng.New(42)

	var gotBytes []byte
	for range 8 {
		gotBytes = append(gotBytes, bytesStream.Byte())
	}

	if diff := cmp.Diff([]byte{159, 228, 199, 113, 129, 117, 84, 202}, gotBytes); diff != "" {
		t.Errorf("seed 42 bytes (-want +got):\n%s", diff)
	}

	negative := rng.New(-5)

	var gotNegative []int
	for range 6 {
		gotNegative = append(gotNegative, negative.Percent())
	}

	if diff := cmp.Diff([]int{5, 37, 65, 92, 90, 18}, gotNegative); diff != "" {
		t.Errorf("seed -5 percents (-want +got):\n%s", diff)
	}
}
