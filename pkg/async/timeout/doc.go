/*
Package timeout races futures against deadlines.

WithTimeout wraps a future so that callers observe either the original
settlement or a timeout rejection, whichever happens first:

	f := future.Go(func() ([]byte, error) {
		return fetch(url)
	})

	data, err := timeout.WithTimeout(f, 2*time.Second).Get(ctx)
	if errors.Is(err, asyncerrors.ErrTimeout) {
		// deadline won the race
	}

The raced future is never cancelled; a deadline loss only stops the
caller from waiting. For work that should actually be told to stop,
Do runs a function under a deadline context:

	data, err := timeout.Do(ctx, 2*time.Second, func(ctx context.Context) ([]byte, error) {
		return fetchCtx(ctx, url)
	})
*/
package timeout
