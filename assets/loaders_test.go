package assets

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/outpost3d/engine/asset"
	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/kerrors"
	"github.com/outpost3d/engine/render"
)

type fakeFS struct{ files map[string]string }

func (f fakeFS) Open(name string) (io.ReadCloser, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, kerrors.NotFound
	}
	return io.NopCloser(strings.NewReader(data)), nil
}
func (f fakeFS) AddSearchPath(string)    {}
func (f fakeFS) RemoveSearchPath(string) {}
func (f fakeFS) Locate(name string) (string, bool) {
	_, ok := f.files[name]
	return name, ok
}

const triangleObj = "o triangle\n" +
	"v 0 0 0\n" +
	"v 1 0 0\n" +
	"v 0 1 0\n" +
	"vn 0 0 1\n" +
	"f 1//1 2//1 3//1\n"

func TestObjLoaderPopulatesMesh(t *testing.T) {
	fs := fakeFS{files: map[string]string{"tri.obj": triangleObj}}
	registry := asset.NewRegistry()
	RegisterDefaults(registry)
	pool := ids.NewPool()
	store := asset.NewStore[*Mesh](pool, time.Minute, CloneMesh)

	id, err := asset.LoadFromFile(store, fs, registry, "tri.obj", "", func(id ids.ID) *Mesh {
		return NewMesh(id, "tri.obj")
	}, nil, asset.Never)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	mesh, ok := store.Get(id)
	if !ok {
		t.Fatalf("expected mesh in store")
	}
	positions := mesh.Data.Streams[render.Position]
	if positions == nil || positions.Len() != 3 {
		t.Fatalf("expected 3 positions, got %v", positions)
	}
	if mesh.Data.Indices == nil || mesh.Data.Indices.Len() != 3 {
		t.Fatalf("expected 3 indices, got %v", mesh.Data.Indices)
	}
}

const redMtl = "newmtl red\n" +
	"Ka 0.1 0.1 0.1\n" +
	"Kd 0.8 0.1 0.1\n" +
	"Ks 1.0 1.0 1.0\n" +
	"d 1.0\n" +
	"Ns 32.0\n"

func TestMtlLoaderPopulatesMaterial(t *testing.T) {
	fs := fakeFS{files: map[string]string{"red.mtl": redMtl}}
	registry := asset.NewRegistry()
	RegisterDefaults(registry)
	pool := ids.NewPool()
	store := asset.NewStore[*Material](pool, time.Minute, CloneMaterial)

	id, err := asset.LoadFromFile(store, fs, registry, "red.mtl", "", func(id ids.ID) *Material {
		return NewMaterial(id, "red.mtl")
	}, nil, asset.Never)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	mat, _ := store.Get(id)
	if mat.Passes[0].Diffuse.R != 0.8 {
		t.Fatalf("expected diffuse red 0.8, got %v", mat.Passes[0].Diffuse)
	}
}

func TestParticleScriptLoaderAppliesYAML(t *testing.T) {
	doc := "lifetime: 3\ngravity: 2.5\nspawn_radius: 1.2\nrise_speed: 5\n"
	fs := fakeFS{files: map[string]string{"fountain.particles.yaml": doc}}
	registry := asset.NewRegistry()
	RegisterDefaults(registry)
	pool := ids.NewPool()
	store := asset.NewStore[*ParticleScript](pool, time.Minute, CloneParticleScript)

	id, err := asset.LoadFromFile(store, fs, registry, "fountain.particles.yaml", "", func(id ids.ID) *ParticleScript {
		return NewParticleScript(id, "fountain.particles.yaml")
	}, nil, asset.Never)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	script, _ := store.Get(id)
	if script.Config.Lifetime != 3 || script.Config.Gravity != 2.5 {
		t.Fatalf("expected overridden config, got %+v", script.Config)
	}
}

func TestParticleScriptSampleRecyclesDeadParticles(t *testing.T) {
	script := NewParticleScript(ids.ID{}, "test")
	script.Config.Lifetime = 1
	particles := make([]Particle, 4)
	for i := range particles {
		particles[i].Index = float32(i)
	}
	live := script.Sample(particles, 0.5)
	if len(live) != 4 {
		t.Fatalf("expected all 4 particles to remain live, got %d", len(live))
	}
	for _, p := range live {
		if p.Alive <= 0 || p.Alive > 1 {
			t.Fatalf("expected alive fraction in (0,1], got %v", p.Alive)
		}
	}
}

func TestBlobLoaderFallsBackForUnknownExtension(t *testing.T) {
	fs := fakeFS{files: map[string]string{"level.dat": "raw-bytes"}}
	registry := asset.NewRegistry()
	RegisterDefaults(registry)
	pool := ids.NewPool()
	store := asset.NewStore[*Blob](pool, time.Minute, CloneBlob)

	id, err := asset.LoadFromFile(store, fs, registry, "level.dat", "", func(id ids.ID) *Blob {
		return NewBlob(id, "level.dat")
	}, nil, asset.Never)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	blob, _ := store.Get(id)
	if string(blob.Bytes) != "raw-bytes" {
		t.Fatalf("expected raw bytes round trip, got %q", blob.Bytes)
	}
}
