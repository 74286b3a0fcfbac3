package reverb

import "testing"

func TestNewNetworkScalesTunings(t *testing.T) {
	n44, err := newNetwork(44100, false)
	if err != nil {
		t.Fatal(err)
	}

	n88, err := newNetwork(88200, false)
	if err != nil {
		t.Fatal(err)
	}

	for i := range n44.combs {
		if n44.combs[i].base != combTuning[i] {
			t.Errorf("comb %d at 44.1k: base = %d, want %d", i, n44.combs[i].base, combTuning[i])
		}

		if n88.combs[i].base != 2*combTuning[i] {
			t.Errorf("comb %d at 88.2k: base = %d, want %d", i, n88.combs[i].base, 2*combTuning[i])
		}
	}

	if n44.headroom != stereoSpread {
		t.Errorf("headroom at 44.1k = %d, want %d", n44.headroom, stereoSpread)
	}

	if n88.headroom != 2*stereoSpread {
		t.Errorf("headroom at 88.2k = %d, want %d", n88.headroom, 2*stereoSpread)
	}
}

func TestNetworkDetuneClamped(t *testing.T) {
	n, err := newNetwork(44100, false)
	if err != nil {
		t.Fatal(err)
	}

	n.setDetune(10 * stereoSpread)
	for i := range n.combs {
		want := n.combs[i].base + n.headroom
		if got := n.combs[i].delaySamples(); got != want {
			t.Errorf("comb %d tap = %d, want %d", i, got, want)
		}
	}

	n.setDetune(-5)
	for i := range n.combs {
		if got := n.combs[i].delaySamples(); got != n.combs[i].base {
			t.Errorf("comb %d tap = %d, want base %d", i, got, n.combs[i].base)
		}
	}
}

func TestNetworkFirstWetSampleIsZero(t *testing.T) {
	n, err := newNetwork(44100, false)
	if err != nil {
		t.Fatal(err)
	}

	for i := range n.combs {
		n.combs[i].feedback = 0.9
		n.combs[i].setDamp(0.2)
	}

	if out := n.process(1); out != 0 {
		t.Fatalf("first wet sample = %v, want 0", out)
	}
}

func TestScaledLengthFloor(t *testing.T) {
	if got := scaledLength(1, 0.1); got != 1 {
		t.Fatalf("scaledLength(1, 0.1) = %d, want 1", got)
	}

	if got := scaledLength(1116, 2); got != 2232 {
		t.Fatalf("scaledLength(1116, 2) = %d, want 2232", got)
	}
}
