package searchdata

import "errors"

// ErrRemoteQuery marks a non-recoverable response from the analytics endpoint.
// A fetch that hits it surfaces no table at all: a silently truncated table
// would produce wrong, undetectable gap rankings downstream.
var ErrRemoteQuery = errors.New("remote query failed")
