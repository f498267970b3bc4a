package densedfa

import "errors"

var (
	errShortBlob  = errors.New("densedfa: blob too short")
	errBadMagic   = errors.New("densedfa: bad magic, not a densedfa blob")
	errBadVersion = errors.New("densedfa: unsupported blob format version")
)
