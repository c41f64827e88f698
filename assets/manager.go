package assets

import (
	"github.com/outpost3d/engine/asset"
	"github.com/outpost3d/engine/idle"
	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/vfs"
)

// manager.go is the call site that actually consults GCPolicy: rather
// than every asset.LoadFromFile caller hand-picking a GCMethod
// literal, Load/LoadAsync resolve the loader type for path first (the
// same resolution asset.LoadFromFile does internally) and look its
// kind up in the policy, so an assets.yaml manifest governs eviction
// for every kind without touching the loader adapters themselves.

// kindByLoaderName maps a registered LoaderType's Name() to the
// GCPolicy key governing the asset kind it produces. Hints() can't
// serve this directly: it names alternate *selection* hints a caller
// passes to Registry.Resolve (IqmLoaderType answers to "model" and
// "skinned-mesh", TtfLoaderType to "truetype", neither of which is a
// DefaultGCPolicy key), not the produced asset's policy kind.
var kindByLoaderName = map[string]string{
	"obj":            "mesh",
	"iqm":            "mesh",
	"mtl":            "material",
	"png":            "texture",
	"wav":            "sound",
	"fnt":            "font",
	"ttf":            "font",
	"blob":           "blob",
	"particlescript": "particle_script",
}

// kindOf returns the GCPolicy key loaderType's produced assets fall
// under, falling back to its own Name() for a loader type this package
// doesn't know about (GCPolicy.Method then defaults that kind to
// asset.Never, same as any other unmentioned key).
func kindOf(loaderType asset.LoaderType) string {
	if kind, ok := kindByLoaderName[loaderType.Name()]; ok {
		return kind
	}
	return loaderType.Name()
}

// Load resolves path's loader type through registry, looks up its GC
// method in policy by kind (e.g. "mesh", "texture", "sound"), and
// drives asset.LoadFromFile with that method.
func Load[T asset.Asset](
	store *asset.Store[T],
	fs vfs.FileSystem,
	registry *asset.Registry,
	policy GCPolicy,
	path, hint string,
	build func(id ids.ID) T,
	options map[string]any,
) (ids.ID, error) {
	loaderType, err := registry.Resolve(path, hint)
	if err != nil {
		return ids.Nil, err
	}
	return asset.LoadFromFile(store, fs, registry, path, hint, build, options, policy.Method(kindOf(loaderType)))
}

// LoadAsync is Load's background-goroutine counterpart, driving
// asset.LoadFromFileAsync with the GC method policy assigns to the
// resolved loader's kind.
func LoadAsync[T asset.Asset](
	store *asset.Store[T],
	fs vfs.FileSystem,
	registry *asset.Registry,
	idleQueue *idle.Queue,
	policy GCPolicy,
	path, hint string,
	build func(id ids.ID) T,
	options map[string]any,
) <-chan asset.LoadResult {
	loaderType, err := registry.Resolve(path, hint)
	if err != nil {
		result := make(chan asset.LoadResult, 1)
		result <- asset.LoadResult{Err: err}
		return result
	}
	return asset.LoadFromFileAsync(store, fs, registry, idleQueue, path, hint, build, options, policy.Method(kindOf(loaderType)))
}
