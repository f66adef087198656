package bramble

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// VoiceCount is the number of fixed mixer voices.
const VoiceCount = 4

// DefaultSampleRate is the mixer output rate used by NewMixer.
const DefaultSampleRate = beep.SampleRate(22050)

type voice struct {
	source  *Sound
	vol     *effects.Volume
	gain    float64
	loop    bool
	playing bool
}

// Mixer is a beep.Streamer with VoiceCount voices. Each voice plays one
// sound at a time; playing on a busy voice replaces its sound. Voice indices
// outside [0, VoiceCount) panic.
//
// The speaker goroutine pulls samples concurrently with the game loop, so
// all voice state is guarded by a mutex.
type Mixer struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	voices  [VoiceCount]voice
	volume  float64
	scratch [][2]float64
	started bool
}

// NewMixer creates a silent mixer at the given output rate. A rate of zero
// selects DefaultSampleRate.
func NewMixer(rate beep.SampleRate) *Mixer {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	m := &Mixer{rate: rate, volume: 1}
	for i := range m.voices {
		m.voices[i].gain = 1
	}
	return m
}

// SampleRate returns the output rate.
func (m *Mixer) SampleRate() beep.SampleRate { return m.rate }

// Start opens the audio device and begins playback of the mixer.
func (m *Mixer) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return nil
	}
	if err := speaker.Init(m.rate, m.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("bramble: audio init: %w", err)
	}
	speaker.Play(m)
	m.started = true
	return nil
}

// Close stops device playback. Voices keep their state.
func (m *Mixer) Close() {
	m.mu.Lock()
	started := m.started
	m.started = false
	m.mu.Unlock()
	if started {
		speaker.Clear()
	}
}

func checkVoice(i int) {
	if i < 0 || i >= VoiceCount {
		panic(fmt.Sprintf("bramble: invalid voice %d (have %d)", i, VoiceCount))
	}
}

// Play starts snd on voice i, replacing anything it was playing.
func (m *Mixer) Play(snd *Sound, i int, loop bool) {
	checkVoice(i)
	if snd == nil {
		m.Stop(i)
		return
	}
	st := snd.stream(m.rate, loop)
	m.mu.Lock()
	defer m.mu.Unlock()
	v := &m.voices[i]
	v.source = snd
	v.loop = loop
	v.playing = true
	v.vol = &effects.Volume{Streamer: st, Base: 2}
	m.applyLevel(v)
}

// Stop silences voice i.
func (m *Mixer) Stop(i int) {
	checkVoice(i)
	m.mu.Lock()
	defer m.mu.Unlock()
	v := &m.voices[i]
	v.playing = false
	v.vol = nil
	v.source = nil
}

// StopAll silences every voice.
func (m *Mixer) StopAll() {
	for i := 0; i < VoiceCount; i++ {
		m.Stop(i)
	}
}

// Done reports whether voice i is idle.
func (m *Mixer) Done(i int) bool {
	checkVoice(i)
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.voices[i].playing
}

// Source returns the sound playing on voice i, or nil once it has finished.
func (m *Mixer) Source(i int) *Sound {
	checkVoice(i)
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.voices[i].playing {
		return nil
	}
	return m.voices[i].source
}

// SetGain sets the level of voice i, clamped to [0, 1].
func (m *Mixer) SetGain(i int, g float64) {
	checkVoice(i)
	m.mu.Lock()
	defer m.mu.Unlock()
	v := &m.voices[i]
	v.gain = clamp01(g)
	m.applyLevel(v)
}

// Gain returns the level of voice i.
func (m *Mixer) Gain(i int) float64 {
	checkVoice(i)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.voices[i].gain
}

// SetVolume sets the master level, clamped to [0, 1].
func (m *Mixer) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp01(vol)
	for i := range m.voices {
		m.applyLevel(&m.voices[i])
	}
}

// Volume returns the master level.
func (m *Mixer) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// applyLevel sets a voice's effective level, gain times master volume.
// Must be called with m.mu held.
func (m *Mixer) applyLevel(v *voice) {
	if v.vol == nil {
		return
	}
	level := v.gain * m.volume
	if level <= 0 {
		v.vol.Silent = true
		v.vol.Volume = 0
		return
	}
	v.vol.Silent = false
	v.vol.Volume = math.Log2(level)
}

// Stream mixes every playing voice into samples. It always fills the whole
// buffer, padding with silence, so the device never drains.
func (m *Mixer) Stream(samples [][2]float64) (n int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range samples {
		samples[i] = [2]float64{}
	}
	if cap(m.scratch) < len(samples) {
		m.scratch = make([][2]float64, len(samples))
	}
	tmp := m.scratch[:len(samples)]
	for i := range m.voices {
		v := &m.voices[i]
		if !v.playing || v.vol == nil {
			continue
		}
		got, more := v.vol.Stream(tmp)
		for j := 0; j < got; j++ {
			samples[j][0] += tmp[j][0]
			samples[j][1] += tmp[j][1]
		}
		if !more || got < len(tmp) {
			v.playing = false
			v.vol = nil
		}
	}
	return len(samples), true
}

// Err always returns nil; voices that fail simply stop.
func (m *Mixer) Err() error { return nil }
