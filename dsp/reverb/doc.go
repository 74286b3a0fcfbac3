// Package reverb implements a Moorer-style reverberation processor.
//
// The network is a bank of parallel feedback comb filters with one-pole
// damping in their feedback paths, summed and diffused through a serial
// cascade of allpass filters. An optional early-reflection FIR stage models
// the first discrete wall echoes before the dense tail builds up. Stereo
// operation runs two detuned copies of the network, one per channel.
//
// [Engine] is the public facade:
//
//	e, err := reverb.New(48000)
//	if err != nil { ... }
//	e.SetRoomSize(0.8)
//	e.SetDamping(0.3)
//	e.SetWet(0.4)
//	e.ProcessStereoBlock(left, right)
//
// Parameter setters are safe to call from a control goroutine while another
// goroutine is processing audio: every parameter crosses through a single
// atomic word, and derived filter coefficients are refreshed by the audio
// goroutine at sample boundaries. The processing paths perform no
// allocation and take no locks.
package reverb
