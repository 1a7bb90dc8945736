package audio

import "testing"

type fakeResources struct {
	samples map[uint16][]byte
	err     error
}

func (f *fakeResources) Load(id uint16) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.samples[id], nil
}

type fakePlayer struct {
	playedSample    []byte
	playedChannel   uint8
	playedVolume    uint8
	playedFreqHz    uint32
	stoppedChannel  uint8
	stopChannelHits int

	musicSample  []byte
	musicDelayMs uint32
	musicPos     uint8
	musicStopped bool
	setDelayMs   uint32
}

func (f *fakePlayer) PlaySound(sample []byte, channel uint8, volume uint8, frequencyHz uint32) error {
	f.playedSample, f.playedChannel, f.playedVolume, f.playedFreqHz = sample, channel, volume, frequencyHz
	return nil
}
func (f *fakePlayer) StopChannel(channel uint8) error {
	f.stoppedChannel = channel
	f.stopChannelHits++
	return nil
}
func (f *fakePlayer) PlayMusic(sample []byte, delayMs uint32, position uint8) error {
	f.musicSample, f.musicDelayMs, f.musicPos = sample, delayMs, position
	return nil
}
func (f *fakePlayer) StopMusic() error   { f.musicStopped = true; return nil }
func (f *fakePlayer) SetMusicDelay(delayMs uint32) error {
	f.setDelayMs = delayMs
	return nil
}

func TestPlaySoundForwardsSampleAndFrequency(t *testing.T) {
	resources := &fakeResources{samples: map[uint16][]byte{5: {1, 2, 3}}}
	player := &fakePlayer{}
	s := NewSystem(resources, player)

	if err := s.PlaySound(5, 10, 63, 2); err != nil {
		t.Fatalf("PlaySound: %v", err)
	}
	if len(player.playedSample) != 3 || player.playedChannel != 2 || player.playedVolume != 63 {
		t.Fatalf("player state = %+v, want sample len 3, channel 2, volume 63", player)
	}
	if player.playedFreqHz != frequencyTable[10] {
		t.Fatalf("playedFreqHz = %d, want %d", player.playedFreqHz, frequencyTable[10])
	}
}

func TestPlaySoundZeroVolumeStopsTheChannel(t *testing.T) {
	resources := &fakeResources{samples: map[uint16][]byte{5: {1}}}
	player := &fakePlayer{}
	s := NewSystem(resources, player)

	if err := s.PlaySound(5, 0, 0, 1); err != nil {
		t.Fatalf("PlaySound: %v", err)
	}
	if player.stopChannelHits != 1 || player.stoppedChannel != 1 {
		t.Fatalf("expected StopChannel(1) to be called once, got hits=%d channel=%d", player.stopChannelHits, player.stoppedChannel)
	}
}

func TestPlaySoundRejectsOutOfRangeChannel(t *testing.T) {
	s := NewSystem(&fakeResources{}, &fakePlayer{})
	if err := s.PlaySound(0, 0, 1, ChannelCount); err == nil {
		t.Fatal("expected an error for an out-of-range channel")
	}
}

func TestSetMusicDelayAppliesToSubsequentPlayMusicWithNoExplicitDelay(t *testing.T) {
	resources := &fakeResources{samples: map[uint16][]byte{9: {1, 2}}}
	player := &fakePlayer{}
	s := NewSystem(resources, player)

	if err := s.SetMusicDelay(250); err != nil {
		t.Fatalf("SetMusicDelay: %v", err)
	}
	if err := s.PlayMusic(9, 0, 3); err != nil {
		t.Fatalf("PlayMusic: %v", err)
	}
	if player.musicDelayMs != 250 {
		t.Fatalf("musicDelayMs = %d, want 250 (inherited from SetMusicDelay)", player.musicDelayMs)
	}

	if err := s.PlayMusic(9, 500, 3); err != nil {
		t.Fatalf("PlayMusic: %v", err)
	}
	if player.musicDelayMs != 500 {
		t.Fatalf("musicDelayMs = %d, want 500 (explicit delay overrides)", player.musicDelayMs)
	}
}

func TestStopMusicForwardsToPlayer(t *testing.T) {
	player := &fakePlayer{}
	s := NewSystem(&fakeResources{}, player)
	if err := s.StopMusic(); err != nil {
		t.Fatalf("StopMusic: %v", err)
	}
	if !player.musicStopped {
		t.Fatal("expected StopMusic to reach the player")
	}
}
