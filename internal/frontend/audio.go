package frontend

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/chip8emu/internal/tone"
)

// Audio plays the machine beep through the system audio device.
type Audio struct {
	ctx    *oto.Context
	player *oto.Player
	tone   *tone.Tone
}

// NewAudio opens the audio device and starts the silent tone stream.
func NewAudio() (*Audio, error) {
	op := &oto.NewContextOptions{
		SampleRate:   tone.SampleRate,
		ChannelCount: tone.ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	t := tone.New(tone.SampleRate, tone.DefaultFrequency)
	player := ctx.NewPlayer(t)
	player.Play()

	return &Audio{
		ctx:    ctx,
		player: player,
		tone:   t,
	}, nil
}

// SetActive switches the beep on or off.
func (a *Audio) SetActive(active bool) {
	a.tone.SetActive(active)
}

// Close stops playback.
func (a *Audio) Close() error {
	return a.player.Close()
}
