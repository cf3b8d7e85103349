package timeout_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/vnykmshr/asyncfn/pkg/async/future"
	"github.com/vnykmshr/asyncfn/pkg/async/timeout"
	"github.com/vnykmshr/asyncfn/pkg/common/errors"
)

// Example_basicUsage demonstrates racing a slow operation.
func Example_basicUsage() {
	slow := future.Go(func() (string, error) {
		time.Sleep(time.Second)
		return "too late", nil
	})

	_, err := timeout.WithTimeout(slow, 20*time.Millisecond).Get(context.Background())

	fmt.Println(err)
	fmt.Println("is timeout:", stderrors.Is(err, errors.ErrTimeout))

	// Output:
	// Timeout error
	// is timeout: true
}

// Example_customMessage demonstrates a descriptive rejection.
func Example_customMessage() {
	pending, _ := future.NewPending[int]()

	_, err := timeout.WithTimeoutMessage(pending, 10*time.Millisecond, "inventory service timed out").
		Get(context.Background())

	fmt.Println(err)

	// Output:
	// inventory service timed out
}

// ExampleDo demonstrates running a context-aware function under a deadline.
func ExampleDo() {
	result, err := timeout.Do(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		// A well-behaved operation checks ctx while working.
		return 21 * 2, nil
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(result)

	// Output:
	// 42
}
