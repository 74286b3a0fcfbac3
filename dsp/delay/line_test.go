package delay

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func fillRamp(d *Line) {
	for i := 0; i < d.Len(); i++ {
		d.Write(float64(i))
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for size=0")
	}

	if _, err := New(-1); err == nil {
		t.Fatal("expected error for size=-1")
	}
}

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		d.Write(float64(i))
	}
	// delay=1 => most recently written (7)
	if got := d.Read(1); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	// delay=3 => 3 samples back from write head
	if got := d.Read(3); got != 5 {
		t.Fatalf("got %v want 5", got)
	}
	// delay=Len() => oldest retained sample
	if got := d.Read(8); got != 0 {
		t.Fatalf("got %v want 0", got)
	}
}

func TestReadWraparound(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		d.Write(float64(i))
	}
	// Read(1) = most recent = 9
	if got := d.Read(1); got != 9 {
		t.Fatalf("got %v want 9", got)
	}
	if got := d.Read(4); got != 6 {
		t.Fatalf("got %v want 6", got)
	}
}

func TestReadOutOfRangeClamped(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 4; i++ {
		d.Write(float64(i + 1))
	}

	// Out-of-range delays clamp instead of panicking.
	if got, want := d.Read(-3), d.Read(0); got != want {
		t.Fatalf("Read(-3) = %v, want %v", got, want)
	}
	if got, want := d.Read(99), d.Read(4); got != want {
		t.Fatalf("Read(99) = %v, want %v", got, want)
	}
}

func TestReset(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(1)
	d.Write(2)
	d.Reset()

	for i := 0; i <= 4; i++ {
		if got := d.Read(i); got != 0 {
			t.Fatalf("after reset Read(%d): got %v want 0", i, got)
		}
	}
}

func TestCapacityFixed(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000; i++ {
		d.Write(float64(i))
	}

	if d.Len() != 16 {
		t.Fatalf("Len changed to %d, want 16", d.Len())
	}
}

func TestReadFractionalLinearRamp(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d)

	// On a linear ramp, cubic Hermite interpolation is exact:
	// Read(k) = 16-k, so delay 3.5 should yield 12.5.
	if got := d.ReadFractional(3.5); !approxEqual(got, 12.5, 1e-10) {
		t.Fatalf("got %v want 12.5", got)
	}
}

func TestReadFractionalMatchesIntegerRead(t *testing.T) {
	d, err := New(32)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d)

	for _, delay := range []int{2, 5, 11} {
		got := d.ReadFractional(float64(delay))
		want := d.Read(delay)
		if !approxEqual(got, want, 1e-10) {
			t.Fatalf("delay %d: fractional %v != integer %v", delay, got, want)
		}
	}
}

func TestReadFractionalEdgesClamped(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d)

	for _, delay := range []float64{-1, 0, 100} {
		got := d.ReadFractional(delay)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("delay %v produced %v", delay, got)
		}
	}
}

func TestReadFractionalSineQuality(t *testing.T) {
	freq := 0.02
	size := 256

	d, err := New(size)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < size; i++ {
		d.Write(math.Sin(2 * math.Pi * freq * float64(i)))
	}

	delay := 20.37
	// Read(k) returns the sample written at index size-k, so fractional
	// delay corresponds to sample index size-delay.
	want := math.Sin(2 * math.Pi * freq * (float64(size) - delay))
	got := d.ReadFractional(delay)

	if !approxEqual(got, want, 1e-4) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func BenchmarkWriteRead(b *testing.B) {
	d, _ := New(2048)
	fillRamp(d)
	b.ResetTimer()

	var acc float64
	for i := 0; i < b.N; i++ {
		d.Write(float64(i))
		acc += d.Read(1499)
	}
	_ = acc
}

func BenchmarkReadFractional(b *testing.B) {
	d, _ := New(2048)
	fillRamp(d)
	b.ResetTimer()

	var acc float64
	for i := 0; i < b.N; i++ {
		acc += d.ReadFractional(100.37)
	}
	_ = acc
}
