/*
Package concurrent runs a fixed batch of tasks with a concurrency cap.

A Runner holds a list of tasks and a limit; Run hands the same argument
to every task, keeps at most limit of them in flight, and returns the
results in task order:

	r, err := concurrent.NewSafe(2,
		fetchProfile,
		fetchOrders,
		fetchRecommendations,
	)
	if err != nil {
		log.Fatal(err)
	}

	results, err := r.Run(ctx, userID)

The batch fails fast: the first task error rejects the whole result
immediately, no further tasks start, and tasks already running finish
in the background with their outcomes discarded. A panicking task is
reported as that task's error rather than crashing the process.

Go returns the batch outcome as a future for composition with the
timeout and queue packages. For Prometheus instrumentation use
NewWithMetrics or NewWithConfigAndMetrics.
*/
package concurrent
