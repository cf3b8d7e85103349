package distributed

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Example_basicUsage demonstrates claiming a shared debounce window.
func Example_basicUsage() {
	// Create a Redis client (in real usage, use your Redis connection)
	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use a test database
	})
	defer func() { _ = rdb.Close() }()

	// Test Redis connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Println("Redis not available, skipping example")
		return
	}

	gate, err := NewGateSafe(Config{
		Redis:      rdb,
		Key:        "example:rebuild_index",
		InstanceID: "example_instance_1",
		Window:     5 * time.Second,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer func() { _ = gate.Release(ctx) }()

	claimed, err := gate.TryOpen(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if claimed {
		fmt.Println("This instance owns the window; running the shared work")
		// rebuildIndex()
	} else {
		fmt.Println("Another instance owns the window; coalescing")
	}

	// Output varies depending on prior state
}

// Example_multipleInstances demonstrates that only one instance wins a window.
func Example_multipleInstances() {
	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})
	defer func() { _ = rdb.Close() }()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Println("Redis not available, skipping example")
		return
	}

	newGate := func(instance string) *WindowGate {
		gate, _ := NewGateSafe(Config{
			Redis:      rdb,
			Key:        "example:shared_window",
			InstanceID: instance,
			Window:     5 * time.Second,
		})
		return gate
	}

	gate1 := newGate("server-1")
	gate2 := newGate("server-2")
	defer func() { _ = gate1.Release(ctx) }()

	winners := 0
	for _, gate := range []*WindowGate{gate1, gate2} {
		claimed, err := gate.TryOpen(ctx)
		if err == nil && claimed {
			winners++
		}
	}

	fmt.Printf("Instances that won the window: %d\n", winners)

	// Output varies depending on prior state
}

// Example_trailingEdge demonstrates extending a window as events keep
// arriving, the distributed form of a trailing-edge debounce.
func Example_trailingEdge() {
	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})
	defer func() { _ = rdb.Close() }()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Println("Redis not available, skipping example")
		return
	}

	gate, err := NewGateSafe(Config{
		Redis:      rdb,
		Key:        "example:trailing",
		InstanceID: "server-1",
		Window:     time.Second,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer func() { _ = gate.Release(ctx) }()

	if claimed, _ := gate.TryOpen(ctx); claimed {
		// Each fresh event pushes the close back out.
		for i := 0; i < 3; i++ {
			if extended, _ := gate.Extend(ctx); extended {
				fmt.Println("window extended")
			}
		}
	}

	// Output varies depending on prior state
}
