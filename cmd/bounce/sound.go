package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

type waveType int

const (
	waveSine waveType = iota
	waveSquare
)

// oscillator generates a fixed-duration raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     waveType
}

func newOscillator(freq float64, duration time.Duration, wave waveType) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: sampleRate.N(duration),
		wave:     wave,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  sampleRate.N(attack),
		releaseSamples: sampleRate.N(release),
		totalSamples:   sampleRate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if rem := e.totalSamples - e.position; rem < e.releaseSamples {
			vol = float64(rem) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// synth owns the speaker and a mixer for fire-and-forget blips
type synth struct {
	mixer beep.Mixer
	ready bool
}

func newSynth() *synth {
	return &synth{}
}

func (s *synth) init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(&s.mixer)
	s.ready = true
	return nil
}

// blip plays a short enveloped tone at the given frequency
func (s *synth) blip(freq float64) {
	if !s.ready {
		return
	}
	tone := newEnvelope(
		newOscillator(freq, 70*time.Millisecond, waveSine),
		70*time.Millisecond, 5*time.Millisecond, 45*time.Millisecond,
	)
	speaker.Lock()
	s.mixer.Add(tone)
	speaker.Unlock()
}
