package engine

import (
	"testing"
	"time"

	"github.com/outpost3d/engine/audio"
	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/scene"
)

type fakeAudio struct {
	nextID  audio.SourceID
	played  int
	stopped []audio.SourceID
	updated []audio.SourceID
}

func (f *fakeAudio) PlaySource(bytes []byte, flags audio.Flags) (audio.SourceID, error) {
	f.nextID++
	f.played++
	return f.nextID, nil
}
func (f *fakeAudio) StopSource(id audio.SourceID) { f.stopped = append(f.stopped, id) }
func (f *fakeAudio) UpdateSource(id audio.SourceID, dt time.Duration) {
	f.updated = append(f.updated, id)
}
func (f *fakeAudio) Shutdown() {}

func TestAudioSourcePlayStopUpdate(t *testing.T) {
	pool := ids.NewPool()
	node := scene.New(pool, "boom")
	driver := &fakeAudio{}

	src := NewAudioSource(node, driver, []byte("clip"), audio.OneShot)
	if src.Playing() {
		t.Fatal("expected a fresh source to not be playing")
	}

	if err := src.Play(); err != nil {
		t.Fatalf("play: %v", err)
	}
	if !src.Playing() || driver.played != 1 {
		t.Fatalf("expected one play call, got played=%d playing=%v", driver.played, src.Playing())
	}

	src.Update(16 * time.Millisecond)
	if len(driver.updated) != 1 {
		t.Fatalf("expected one update call, got %v", driver.updated)
	}

	src.Stop()
	if src.Playing() || len(driver.stopped) != 1 {
		t.Fatalf("expected one stop call and playing=false, got stopped=%v playing=%v", driver.stopped, src.Playing())
	}

	// Update after Stop is a no-op.
	src.Update(16 * time.Millisecond)
	if len(driver.updated) != 1 {
		t.Fatalf("expected update to be ignored once stopped, got %v", driver.updated)
	}
}

func TestAudioSourceReplayStopsPrevious(t *testing.T) {
	pool := ids.NewPool()
	node := scene.New(pool, "boom")
	driver := &fakeAudio{}
	src := NewAudioSource(node, driver, []byte("clip"), audio.OneShot)

	if err := src.Play(); err != nil {
		t.Fatalf("play: %v", err)
	}
	if err := src.Play(); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(driver.stopped) != 1 {
		t.Fatalf("expected replay to stop the previous source once, got %v", driver.stopped)
	}
	if driver.played != 2 {
		t.Fatalf("expected two play calls, got %d", driver.played)
	}
}
