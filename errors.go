package marsilea

import "errors"

// ErrDataShape reports side data whose length does not match the main
// matrix axis it attaches to, or a matrix with ragged rows.
var ErrDataShape = errors.New("marsilea: data shape mismatch")

// ErrNoData reports an operation that needs a data matrix on a board
// created without one.
var ErrNoData = errors.New("marsilea: board has no data matrix")
