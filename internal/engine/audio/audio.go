// Package audio provides the ambient loop and morph feedback chimes.
package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// chimeDuration is the length of one morph-complete chime.
const chimeDuration = 280 * time.Millisecond

// Manager handles the ambient background loop and synthesized chimes.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	// Ambient loop
	ambientStreamer beep.StreamSeekCloser
	ambientCtrl     *beep.Ctrl
	ambientVolume   *effects.Volume
	ambientPlaying  bool
	ambientPath     string

	// Volume settings (0.0 to 1.0)
	masterVolume float64

	// Mixer for concurrent chimes
	chimeMixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		masterVolume: 1.0,
		chimeMixer:   &beep.Mixer{},
	}
}

// Init initializes the audio system.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(m.chimeMixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopAmbientInternal()
	speaker.Clear()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.updateAmbientVolume()
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

func (m *Manager) updateAmbientVolume() {
	if m.ambientVolume == nil {
		return
	}
	if m.masterVolume <= 0 {
		m.ambientVolume.Silent = true
	} else {
		m.ambientVolume.Silent = false
		m.ambientVolume.Volume = volumeToDb(m.masterVolume)
	}
}

// volumeToDb converts a 0-1 volume to the decibel scale effects.Volume uses.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// PlayAmbientFile loops a WAV file as the background bed.
func (m *Manager) PlayAmbientFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return fmt.Errorf("audio not initialized")
	}

	m.stopAmbientInternal()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open ambient: %w", err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode wav: %w", err)
	}

	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	m.ambientCtrl = &beep.Ctrl{
		Streamer: &loopStreamer{streamer: streamer, resampled: resampled},
	}
	m.ambientVolume = &effects.Volume{
		Streamer: m.ambientCtrl,
		Base:     2,
	}
	m.updateAmbientVolume()

	m.ambientStreamer = streamer
	m.ambientPath = path
	m.ambientPlaying = true

	speaker.Play(m.ambientVolume)
	return nil
}

// StopAmbient stops the background loop.
func (m *Manager) StopAmbient() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopAmbientInternal()
}

func (m *Manager) stopAmbientInternal() {
	if m.ambientCtrl != nil {
		m.ambientCtrl.Paused = true
	}
	speaker.Clear()
	if m.initialized {
		speaker.Play(m.chimeMixer)
	}
	m.ambientPlaying = false
	if m.ambientStreamer != nil {
		m.ambientStreamer.Close()
		m.ambientStreamer = nil
	}
	m.ambientCtrl = nil
	m.ambientVolume = nil
	m.ambientPath = ""
}

// IsAmbientPlaying returns whether the ambient loop is running.
func (m *Manager) IsAmbientPlaying() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ambientPlaying
}

// MorphChime plays a short two-tone chime marking a completed morph.
func (m *Manager) MorphChime() error {
	return m.playChime(523, 784) // C5 over G5
}

// ExplodeChime plays a lower chime for the scatter effect.
func (m *Manager) ExplodeChime() error {
	return m.playChime(392, 262) // G4 falling to C4
}

func (m *Manager) playChime(freqA, freqB int) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.masterVolume
	m.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("audio not initialized")
	}
	if vol <= 0 {
		return nil
	}

	toneA, err := generators.SinTone(m.sampleRate, freqA)
	if err != nil {
		return fmt.Errorf("chime tone: %w", err)
	}
	toneB, err := generators.SinTone(m.sampleRate, freqB)
	if err != nil {
		return fmt.Errorf("chime tone: %w", err)
	}

	n := m.sampleRate.N(chimeDuration)
	mixed := beep.Mix(
		beep.Take(n, toneA),
		beep.Take(n, toneB),
	)

	// Fade the whole chime out so it ends without a click, and keep it
	// well under the ambient bed.
	faded := effects.Transition(mixed, n, 1.0, 0.0, effects.TransitionEqualPower)
	shaped := &effects.Volume{
		Streamer: faded,
		Base:     2,
		Volume:   volumeToDb(vol * 0.35),
	}

	m.chimeMixer.Add(shaped)
	return nil
}

// loopStreamer restarts its source whenever it runs dry.
type loopStreamer struct {
	streamer  beep.StreamSeekCloser
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if !ok {
			if err := l.streamer.Seek(0); err != nil {
				return filled, false
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
