// pkg/audio/cockpit.go
package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-solarflight/pkg/event"
	"github.com/opd-ai/go-solarflight/pkg/logging"
)

// DefaultVolume is the linear gain applied to every tone
const DefaultVolume = 0.3

// Sink plays finished streams
type Sink interface {
	Play(s beep.Streamer)
}

// SpeakerSink plays through the system speaker
type SpeakerSink struct {
	mixer *beep.Mixer
}

var (
	speakerOnce sync.Once
	speakerSink *SpeakerSink
	speakerErr  error
)

// OpenSpeaker initialises the speaker once per process. Later calls return
// the same sink or the same error.
func OpenSpeaker() (*SpeakerSink, error) {
	speakerOnce.Do(func() {
		if err := speaker.Init(SampleRate, SampleRate.N(ChirpDuration/2)); err != nil {
			speakerErr = fmt.Errorf("failed to initialise speaker: %w", err)
			return
		}
		speakerSink = &SpeakerSink{mixer: &beep.Mixer{}}
		speaker.Play(speakerSink.mixer)
	})
	return speakerSink, speakerErr
}

// Play mixes s into the running output
func (s *SpeakerSink) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Cockpit turns flight events into tones
type Cockpit struct {
	sink   Sink
	volume float64
	subs   []*event.Subscription
}

// NewCockpit subscribes to gear and cockpit events on bus
func NewCockpit(sink Sink, volume float64, bus *event.Bus) *Cockpit {
	c := &Cockpit{sink: sink, volume: volume}
	c.subs = append(c.subs,
		bus.Subscribe(event.GearShifted, c.onGear),
		bus.Subscribe(event.CockpitToggled, c.onToggle),
	)
	return c
}

// Attach opens the speaker and wires a cockpit to bus. A missing audio
// device is logged and leaves the flythrough silent.
func Attach(ctx context.Context, bus *event.Bus, logger *logging.Logger) *Cockpit {
	sink, err := OpenSpeaker()
	if err != nil {
		logger.Warn(ctx, "Audio disabled", "error", err.Error())
		return nil
	}
	return NewCockpit(sink, DefaultVolume, bus)
}

func (c *Cockpit) onGear(e event.Event) {
	ge, ok := e.(*event.GearEvent)
	if !ok {
		return
	}
	if ge.Shift < 0 {
		c.sink.Play(GearDownChirp(c.volume))
		return
	}
	c.sink.Play(GearUpChirp(c.volume))
}

func (c *Cockpit) onToggle(e event.Event) {
	c.sink.Play(Click(c.volume))
}

// Close stops reacting to events. A nil cockpit is fine.
func (c *Cockpit) Close() {
	if c == nil {
		return
	}
	for _, s := range c.subs {
		s.Cancel()
	}
	c.subs = nil
}
