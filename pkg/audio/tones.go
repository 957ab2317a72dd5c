// Package audio plays short cockpit tones for gear shifts and cockpit
// toggles. The flythrough runs the same with or without a speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is used for every generated tone
const SampleRate = beep.SampleRate(44100)

// Tone lengths
const (
	ChirpDuration = 120 * time.Millisecond
	ClickDuration = 15 * time.Millisecond
	toneRelease   = 40 * time.Millisecond
)

// sweep is a sine whose frequency moves linearly from start to end
type sweep struct {
	start, end float64
	phase      float64
	position   int
	total      int
	release    int
	rate       beep.SampleRate
}

// NewSweep creates a tone gliding from start to end Hz over d, fading out
// over its last 40ms
func NewSweep(start, end float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	release := rate.N(toneRelease)
	if release > total {
		release = total
	}
	return &sweep{start: start, end: end, total: total, release: release, rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		progress := float64(s.position) / float64(s.total)
		freq := s.start + (s.end-s.start)*progress

		vol := 1.0
		if remaining := s.total - s.position; remaining < s.release {
			vol = float64(remaining) / float64(s.release)
		}

		val := math.Sin(2*math.Pi*s.phase) * vol
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// GearUpChirp rises an octave
func GearUpChirp(volume float64) beep.Streamer {
	return withVolume(NewSweep(440, 880, ChirpDuration, SampleRate), volume)
}

// GearDownChirp falls an octave
func GearDownChirp(volume float64) beep.Streamer {
	return withVolume(NewSweep(880, 440, ChirpDuration, SampleRate), volume)
}

// Click is a very short low blip
func Click(volume float64) beep.Streamer {
	return withVolume(NewSweep(1200, 300, ClickDuration, SampleRate), volume)
}

// withVolume scales a stream linearly; zero or less is silent
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
