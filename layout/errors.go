package layout

import "errors"

var (
	// ErrSizeOverflow indicates declared fixed sizes cannot fit in the
	// available extent. A configuration error, never silently clipped.
	ErrSizeOverflow = errors.New("layout: fixed sizes exceed available extent")

	// ErrSpacingLength indicates a per-boundary spacing slice whose
	// length does not equal the number of segment boundaries.
	ErrSpacingLength = errors.New("layout: spacing length does not match segment boundaries")

	// ErrNotFound indicates a lookup for a panel name that was never
	// registered. Querying an empty track is not an error.
	ErrNotFound = errors.New("layout: panel not found")

	// ErrPartition indicates an invalid partition declaration: bad cut
	// positions, a zero-length axis, or an order list inconsistent with
	// the labels.
	ErrPartition = errors.New("layout: invalid partition")

	// ErrDuplicateName indicates two panels declared under the same name.
	ErrDuplicateName = errors.New("layout: duplicate panel name")

	// ErrSplitTwice indicates a cell axis split more than once.
	ErrSplitTwice = errors.New("layout: axis already split")

	// ErrAppendComposite indicates an attempt to append one composite
	// layout into another. Composites accept plain layouts only; use
	// Stack for nesting.
	ErrAppendComposite = errors.New("layout: cannot append a composite layout")
)
