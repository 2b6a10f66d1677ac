// Package memzero wipes key material once it is no longer needed.
package memzero

import "runtime"

// Zero clears every given buffer in place.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
		// Keep the writes from being dropped as dead stores.
		runtime.KeepAlive(b)
	}
}
