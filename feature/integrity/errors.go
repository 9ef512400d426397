package integrity

import "errors"

// ErrStorageUnavailable is returned by storage checks when no client is configured.
var ErrStorageUnavailable = errors.New("storage client is not configured")
