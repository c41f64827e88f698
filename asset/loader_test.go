package asset

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/outpost3d/engine/idle"
	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/kerrors"
)

type fakeFS struct {
	files map[string]string
}

func (f fakeFS) Open(name string) (io.ReadCloser, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, kerrors.NotFound
	}
	return io.NopCloser(strings.NewReader(data)), nil
}
func (f fakeFS) AddSearchPath(string)             {}
func (f fakeFS) RemoveSearchPath(string)          {}
func (f fakeFS) Locate(name string) (string, bool) { _, ok := f.files[name]; return name, ok }

type textLoaderType struct{ fail bool }

func (t textLoaderType) Supports(path string) bool { return strings.HasSuffix(path, ".txt") }
func (t textLoaderType) Name() string              { return "text" }
func (t textLoaderType) Hints() []string           { return []string{"txt"} }
func (t textLoaderType) Instantiate(path string, stream io.Reader) (Loader, error) {
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	return textLoader{data: string(data), fail: t.fail}, nil
}

type textLoader struct {
	data string
	fail bool
}

func (l textLoader) Into(target Asset, options map[string]any) error {
	if l.fail {
		return errors.New("malformed text asset")
	}
	b, ok := target.(*blob)
	if !ok {
		return errors.New("unexpected asset type")
	}
	b.bytes = []byte(l.data)
	return nil
}

func TestLoadFromFilePopulatesAndSetsRequestedGC(t *testing.T) {
	fs := fakeFS{files: map[string]string{"greeting.txt": "hello"}}
	registry := NewRegistry()
	registry.Register(textLoaderType{})
	store, _ := newBlobStore()

	id, err := LoadFromFile(store, fs, registry, "greeting.txt", "", func(id ids.ID) *blob {
		return &blob{Base: NewBase(id, "greeting.txt")}
	}, nil, Periodic)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, ok := store.Get(id)
	if !ok || string(got.bytes) != "hello" {
		t.Fatalf("expected loaded bytes 'hello', got %q ok=%v", got.bytes, ok)
	}
	if got.GCMethod() != Periodic {
		t.Fatalf("expected requested GC method to be applied after a successful load")
	}
}

func TestLoadFromFileMissingPathIsNotFound(t *testing.T) {
	fs := fakeFS{files: map[string]string{}}
	registry := NewRegistry()
	registry.Register(textLoaderType{})
	store, _ := newBlobStore()

	_, err := LoadFromFile(store, fs, registry, "missing.txt", "", func(id ids.ID) *blob {
		return &blob{Base: NewBase(id, "missing.txt")}
	}, nil, Never)
	if !errors.Is(err, kerrors.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestLoadFromFileNoMatchingLoaderIsUnavailable(t *testing.T) {
	fs := fakeFS{files: map[string]string{"data.bin": "x"}}
	registry := NewRegistry() // nothing registered
	store, _ := newBlobStore()

	_, err := LoadFromFile(store, fs, registry, "data.bin", "", func(id ids.ID) *blob {
		return &blob{Base: NewBase(id, "data.bin")}
	}, nil, Never)
	if !errors.Is(err, kerrors.LoaderUnavailable) {
		t.Fatalf("expected LoaderUnavailable, got %v", err)
	}
}

func TestLoadFromFileFailurePopulatingLeavesNoAsset(t *testing.T) {
	fs := fakeFS{files: map[string]string{"bad.txt": "garbage"}}
	registry := NewRegistry()
	registry.Register(textLoaderType{fail: true})
	store, _ := newBlobStore()

	_, err := LoadFromFile(store, fs, registry, "bad.txt", "", func(id ids.ID) *blob {
		return &blob{Base: NewBase(id, "bad.txt")}
	}, nil, Never)
	if !errors.Is(err, kerrors.AssetLoadFailure) {
		t.Fatalf("expected AssetLoadFailure, got %v", err)
	}
	if _, ok := store.Find("bad.txt"); ok {
		t.Fatalf("expected the half-loaded asset to be destroyed, not left visible")
	}
}

func TestLoadFromFileAsyncInstallsOnDrain(t *testing.T) {
	fs := fakeFS{files: map[string]string{"greeting.txt": "hello async"}}
	registry := NewRegistry()
	registry.Register(textLoaderType{})
	store, _ := newBlobStore()
	queue := idle.New(nil)

	result := LoadFromFileAsync(store, fs, registry, queue, "greeting.txt", "", func(id ids.ID) *blob {
		return &blob{Base: NewBase(id, "greeting.txt")}
	}, nil, Never)

	deadline := time.After(time.Second)
	for {
		queue.Drain(time.Now())
		select {
		case r := <-result:
			if r.Err != nil {
				t.Fatalf("load: %v", r.Err)
			}
			got, ok := store.Get(r.ID)
			if !ok || string(got.bytes) != "hello async" {
				t.Fatalf("expected loaded bytes 'hello async', got %q ok=%v", got.bytes, ok)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for async load to install")
		default:
		}
	}
}
