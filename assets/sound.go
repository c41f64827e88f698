package assets

import (
	"github.com/outpost3d/engine/asset"
	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/load"
)

// Sound is decoded PCM audio data plus its playback attributes,
// grounded on gazed-vu's sound.go (SndData plus a GPU/driver buffer
// tag) generalized to an arbitrary audio.Audio driver instead of a
// fixed OpenAL buffer id.
type Sound struct {
	asset.Base
	Channels   uint16
	Frequency  uint32
	SampleBits uint16
	PCM        []byte
	// DriverID is set once the external audio.Audio driver has
	// uploaded PCM, left zero until then.
	DriverID uint32
}

// NewSound returns an empty sound asset awaiting a Loader.
func NewSound(id ids.ID, name string) *Sound {
	return &Sound{Base: asset.NewBase(id, name)}
}

// ApplyWav populates Sound's fields from a decoded WAV file.
func (s *Sound) ApplyWav(d *load.SndData) {
	s.Channels = d.Attrs.Channels
	s.Frequency = d.Attrs.Frequency
	s.SampleBits = d.Attrs.SampleBits
	s.PCM = d.Data
}

// CloneSound deep-copies s's PCM bytes under a fresh id. DriverID is
// not copied: a clone has not yet been uploaded to the driver.
func CloneSound(s *Sound, newID ids.ID) *Sound {
	clone := NewSound(newID, s.Name())
	clone.Channels, clone.Frequency, clone.SampleBits = s.Channels, s.Frequency, s.SampleBits
	clone.PCM = append([]byte(nil), s.PCM...)
	return clone
}
