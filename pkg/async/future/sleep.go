package future

import (
	"time"
)

// Sleep returns a future that resolves with the fire time once d has
// elapsed.
func Sleep(d time.Duration) *Future[time.Time] {
	return SleepTimer(d, nil)
}

// SleepTimer is Sleep with access to the underlying timer: handler, if
// non-nil, is called synchronously with the raw *time.Timer so the
// caller can stop it early. A stopped timer leaves the future
// unsettled forever; pair it with a context-aware Get or a timeout
// race if the caller might abandon the wait.
func SleepTimer(d time.Duration, handler func(*time.Timer)) *Future[time.Time] {
	f, complete := NewPending[time.Time]()

	t := time.AfterFunc(d, func() {
		complete(time.Now(), nil)
	})
	if handler != nil {
		handler(t)
	}

	return f
}
