// Package kerrors defines the sentinel error kinds shared by the engine's
// core subsystems. Operations return these wrapped with context instead of
// panicking or throwing, so callers can branch with errors.Is/errors.As.
package kerrors

import "errors"

// Sentinel error kinds. Wrap with fmt.Errorf("...: %w", Kind) to add context.
var (
	// NotFound is returned when a handle is dereferenced after its entity
	// was destroyed, or never existed.
	NotFound = errors.New("no such entity")

	// OutsideBounds is returned for an octree operation on an AABB the tree
	// cannot contain without a grow the caller forbade.
	OutsideBounds = errors.New("outside octree bounds")

	// InvalidInsertion is returned when an entity fails tree invariants,
	// such as reparenting a scene node into its own descendant.
	InvalidInsertion = errors.New("invalid insertion")

	// LoaderUnavailable is returned when no registered loader matches a path.
	LoaderUnavailable = errors.New("no loader available")

	// AssetLoadFailure is returned when a loader ran but could not
	// populate the asset (malformed bytes, unsupported variant).
	AssetLoadFailure = errors.New("asset load failed")

	// BufferOverflow is returned when a vertex/index/hardware-buffer upload
	// exceeds its capacity.
	BufferOverflow = errors.New("buffer overflow")

	// DeadResource is returned for use of a hardware buffer or asset after
	// release.
	DeadResource = errors.New("resource released")
)
