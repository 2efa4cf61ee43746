package stream

import "time"

// NowMs is the wall-clock source for auto-generated stream IDs. A var
// rather than a direct time.Now() call so tests can pin it.
var NowMs = func() uint64 {
	return uint64(time.Now().UnixMilli())
}
