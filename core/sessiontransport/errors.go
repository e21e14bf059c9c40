package sessiontransport

import "errors"

// ErrExpiredOnCommit is returned when a session has no lifetime left after commit.
var ErrExpiredOnCommit = errors.New("sessiontransport: session expired before cookie could be written")
