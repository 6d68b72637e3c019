package tak

import "errors"

// ErrInvalidTPS is returned by ParseTPS when the input does not match the TPS grammar.
var ErrInvalidTPS = errors.New("tak: invalid TPS")

// ErrInvalidPly is the sentinel error for malformed PTN-style ply notation. The package has
// no ply parser, so no function here returns it.
var ErrInvalidPly = errors.New("tak: invalid ply notation")
