package layout

import "fmt"

// SizeSpec declares the extent of a single panel along its track.
// A fixed spec passes through unchanged. An auto spec is resolved from
// its content hint when one was supplied, otherwise from an equal share
// of whatever extent remains after fixed and hinted entries.
type SizeSpec struct {
	Value float64 // fixed size in inches; ignored when Auto is set
	Auto  bool
	Hint  float64 // content-derived size in inches, only for auto entries
}

// Fixed returns a SizeSpec with a concrete size.
func Fixed(v float64) SizeSpec {
	return SizeSpec{Value: v}
}

// Flex returns an auto SizeSpec. The optional hint is resolved later
// from panel content (e.g. a text extent measured by the renderer).
func Flex() SizeSpec {
	return SizeSpec{Auto: true}
}

// Hinted returns an auto SizeSpec carrying a content-size hint.
func Hinted(hint float64) SizeSpec {
	return SizeSpec{Auto: true, Hint: hint}
}

// defaultFlexSize is used for auto entries with no hint when the total
// extent is unbounded and there is nothing to share.
const defaultFlexSize = 1.0

// ResolveSizes converts mixed fixed/auto size declarations into concrete
// sizes. total is the extent shared by all entries, in inches; a total of
// zero means unbounded (the figure grows to fit), in which case hintless
// auto entries fall back to a default size.
//
// If the sum of fixed sizes exceeds a bounded total, or fixed plus hinted
// sizes leave no room for the remaining auto entries, ResolveSizes
// returns ErrSizeOverflow.
func ResolveSizes(specs []SizeSpec, total float64) ([]float64, error) {
	sizes := make([]float64, len(specs))

	var fixedSum, hintSum float64
	var flexCount int
	for _, s := range specs {
		switch {
		case !s.Auto:
			fixedSum += s.Value
		case s.Hint > 0:
			hintSum += s.Hint
		default:
			flexCount++
		}
	}

	bounded := total > 0
	if bounded && fixedSum > total {
		return nil, fmt.Errorf("%w: fixed sizes sum to %g, extent is %g",
			ErrSizeOverflow, fixedSum, total)
	}

	share := defaultFlexSize
	if bounded {
		remain := total - fixedSum - hintSum
		if flexCount > 0 {
			if remain <= 0 {
				return nil, fmt.Errorf("%w: %g left for %d flexible entries",
					ErrSizeOverflow, remain, flexCount)
			}
			share = remain / float64(flexCount)
		} else if remain < 0 {
			return nil, fmt.Errorf("%w: fixed and hinted sizes sum to %g, extent is %g",
				ErrSizeOverflow, fixedSum+hintSum, total)
		}
	}

	for i, s := range specs {
		switch {
		case !s.Auto:
			sizes[i] = s.Value
		case s.Hint > 0:
			sizes[i] = s.Hint
		default:
			sizes[i] = share
		}
	}
	return sizes, nil
}
