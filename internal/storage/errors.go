package storage

import "errors"

// ErrInvalidArgument marks caller mistakes (negative look-back windows,
// malformed filters) detected before any query is issued. Handlers map it to
// a 400 response; everything else propagates as a store failure.
var ErrInvalidArgument = errors.New("invalid argument")
