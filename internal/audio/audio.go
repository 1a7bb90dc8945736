// Package audio is the control-surface half of the audio pipeline:
// it resolves resource ids and frequency codes bytecode hands it and
// forwards the result to a host.Host for actual playback. It owns no
// mixing or synthesis (see DESIGN.md's Non-goals).
package audio

import "fmt"

// ResourceLoader fetches a resource's decompressed bytes by id,
// satisfied by *resource.Directory.
type ResourceLoader interface {
	Load(id uint16) ([]byte, error)
}

// Player is the host-side sink System forwards playback calls to,
// satisfied by host.Host.
type Player interface {
	PlaySound(sample []byte, channel uint8, volume uint8, frequencyHz uint32) error
	StopChannel(channel uint8) error
	PlayMusic(sample []byte, delayMs uint32, position uint8) error
	StopMusic() error
	SetMusicDelay(delayMs uint32) error
}

// ChannelCount is the number of independent sound channels the
// control surface addresses (the original engine's four-channel mix).
const ChannelCount = 4

// frequencyTable maps the 8-bit frequency code bytecode passes into a
// sample playback rate in Hz. No table bytes survive in the retrieval
// pack to ground this on (see DESIGN.md), so the table is generated:
// code 0 is the lowest supported rate and each step adds a fixed
// frequencyStepPM Hz, a linear ramp from 4000 Hz (code 0) to 48625 Hz
// (code 255).
var frequencyTable = buildFrequencyTable()

const (
	baseFrequencyHz = 4000
	frequencyStepPM = 175 // hz added per table step
)

func buildFrequencyTable() [256]uint32 {
	var table [256]uint32
	for i := range table {
		table[i] = baseFrequencyHz + uint32(i)*frequencyStepPM
	}
	return table
}

// System implements vm.AudioPort, turning bytecode's resource
// id/frequency-code/volume/channel quadruple into sample bytes and a
// Hz rate handed to a Player.
type System struct {
	resources ResourceLoader
	player    Player

	musicDelayMs uint32
}

// NewSystem builds a System backed by resources for sample lookup and
// player for actual output.
func NewSystem(resources ResourceLoader, player Player) *System {
	return &System{resources: resources, player: player}
}

// PlaySound loads resourceID's sample and queues it on channel at
// volume, converting the frequency code through frequencyTable.
func (s *System) PlaySound(resourceID uint16, frequency uint8, volume uint8, channel uint8) error {
	if channel >= ChannelCount {
		return fmt.Errorf("audio: channel %d is outside the supported range [0,%d)", channel, ChannelCount)
	}
	sample, err := s.resources.Load(resourceID)
	if err != nil {
		return fmt.Errorf("audio: loading sound resource %d: %w", resourceID, err)
	}
	if volume == 0 {
		return s.player.StopChannel(channel)
	}
	return s.player.PlaySound(sample, channel, volume, frequencyTable[frequency])
}

// StopChannel silences channel immediately.
func (s *System) StopChannel(channel uint8) error {
	if channel >= ChannelCount {
		return fmt.Errorf("audio: channel %d is outside the supported range [0,%d)", channel, ChannelCount)
	}
	return s.player.StopChannel(channel)
}

// PlayMusic loads resourceID's music sample and queues it to start
// after delay milliseconds at the given row position. A delay of 0
// uses the value last recorded by SetMusicDelay instead.
func (s *System) PlayMusic(resourceID uint16, delay uint16, position uint8) error {
	sample, err := s.resources.Load(resourceID)
	if err != nil {
		return fmt.Errorf("audio: loading music resource %d: %w", resourceID, err)
	}
	delayMs := s.musicDelayMs
	if delay != 0 {
		delayMs = uint32(delay)
	}
	return s.player.PlayMusic(sample, delayMs, position)
}

// StopMusic halts whatever music resource is currently playing.
func (s *System) StopMusic() error {
	return s.player.StopMusic()
}

// SetMusicDelay records the delay (in milliseconds) applied to the
// next PlayMusic call that doesn't specify its own delay.
func (s *System) SetMusicDelay(delay uint16) error {
	s.musicDelayMs = uint32(delay)
	return s.player.SetMusicDelay(s.musicDelayMs)
}
