package debounce_test

import (
	"context"
	"fmt"
	"time"

	"github.com/vnykmshr/asyncfn/pkg/async/debounce"
)

// Example_basicUsage demonstrates collapsing a burst into one call.
func Example_basicUsage() {
	done := make(chan string, 1)

	d, err := debounce.NewSafe(func(query string) {
		done <- query
	}, 20*time.Millisecond)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// A typing burst: only the final value survives.
	d.Trigger("g")
	d.Trigger("go")
	d.Trigger("goph")
	d.Trigger("gopher")

	fmt.Println("searched for:", <-done)

	// Output:
	// searched for: gopher
}

// Example_leading demonstrates firing on the first call of a burst.
func Example_leading() {
	d, err := debounce.NewWithConfigSafe(func(event string) {
		fmt.Println("handled:", event)
	}, debounce.Config{Delay: 50 * time.Millisecond, Leading: true})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	ran := d.Trigger("click")
	fmt.Println("ran synchronously:", ran)

	// Later calls in the window are absorbed.
	ran = d.Trigger("click")
	fmt.Println("ran synchronously:", ran)

	// Output:
	// handled: click
	// ran synchronously: true
	// ran synchronously: false
}

// ExampleThrottler demonstrates dropping calls during an open window.
func ExampleThrottler() {
	th, err := debounce.NewThrottlerSafe(func(n int) {
		fmt.Println("processed:", n)
	}, 100*time.Millisecond)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for i := 1; i <= 5; i++ {
		th.Trigger(i)
	}

	// Output:
	// processed: 1
}

// ExampleCoalescer demonstrates sharing one result across a burst.
func ExampleCoalescer() {
	c, err := debounce.NewCoalescerSafe(func(id string) (string, error) {
		// In a real application this would be an expensive lookup.
		return "profile-of-" + id, nil
	}, 20*time.Millisecond)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	f1 := c.Trigger("alice")
	f2 := c.Trigger("alice")

	ctx := context.Background()
	v1, _ := f1.Get(ctx)
	v2, _ := f2.Get(ctx)

	fmt.Println(v1)
	fmt.Println(v2)

	// Output:
	// profile-of-alice
	// profile-of-alice
}

// ExampleDebouncer_Flush demonstrates draining a pending call on shutdown.
func ExampleDebouncer_Flush() {
	d, err := debounce.NewSafe(func(state string) {
		fmt.Println("saved:", state)
	}, time.Hour)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	d.Trigger("draft-7")

	// Shutting down: do not wait for the window.
	d.Flush()

	// Output:
	// saved: draft-7
}
