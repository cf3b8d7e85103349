/*
Package queue composes functions into strictly sequential chains.

Each step receives the previous step's resolved value; a step that
returns a *future.Future[any] is awaited before the next step runs, so
synchronous and asynchronous stages mix freely:

	c, err := queue.NewSafe(
		func(ctx context.Context, in any) (any, error) {
			return loadOrder(in.(string))
		},
		func(ctx context.Context, in any) (any, error) {
			// Asynchronous stage: hand back a future.
			order := in.(*Order)
			return future.Go(func() (any, error) {
				return enrich(order)
			}), nil
		},
		func(ctx context.Context, in any) (any, error) {
			return render(in.(*Order)), nil
		},
	)
	if err != nil {
		log.Fatal(err)
	}

	out, err := c.Run(ctx, "order-17")

The first error stops the chain and propagates unmodified. Chains nest
via Step, and Go returns the whole chain's outcome as a future. For
Prometheus instrumentation use NewWithMetrics or
NewWithConfigAndMetrics.
*/
package queue
