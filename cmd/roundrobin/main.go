// Command roundrobin drives a fixed set of coroutines in round-robin
// order, passing each one's yielded value to the next coroutine in the
// rotation, and prints one line per step. It exists to exercise
// World.Create, World.Resume, and World.Yield end to end the way a
// real scheduler embedding this package would, rather than as a
// library demo of a single primitive.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cooptask/coro"
)

func main() {
	workers := flag.Int("workers", 3, "number of coroutines to round-robin between")
	steps := flag.Int("steps", 12, "number of scheduling steps to run")
	flag.Parse()

	if *workers < 1 {
		fmt.Fprintln(os.Stderr, "roundrobin: -workers must be at least 1")
		os.Exit(1)
	}

	w := coro.NewWorld(0)
	coros := make([]*coro.Coroutine, *workers)
	for i := range coros {
		id := i
		coros[i] = w.Create(func(arg any) any {
			received := arg
			for {
				fmt.Printf("worker %d received %v\n", id, received)
				received = w.Yield(fmt.Sprintf("from-%d", id))
			}
		})
	}

	var carry any = "start"
	for step := 0; step < *steps; step++ {
		target := coros[step%len(coros)]
		carry = w.Resume(target, carry)
	}
}
