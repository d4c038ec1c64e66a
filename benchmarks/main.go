package main

import (
	"fmt"
	"time"

	"github.com/cooptask/coro"
)

// Comparable workloads: bounce a value back and forth numRounds times
// between two execution contexts, once using a pair of coroutines
// resuming each other, once using a pair of goroutines connected by
// native channels.

var throughput = []int{60, 600, 6000, 600000}

func coroPingPong(rounds int) {
	w := coro.NewWorld(0)
	pong := w.Create(func(arg any) any {
		n := arg.(int)
		for n > 0 {
			n = w.Yield(n - 1).(int)
		}
		return nil
	})
	arg := rounds
	for arg > 0 {
		result := w.Resume(pong, arg)
		arg = result.(int)
	}
}

func chanPingPong(rounds int) {
	ping := make(chan int)
	pong := make(chan int)
	done := make(chan struct{})
	go func() {
		for n := range ping {
			if n <= 0 {
				close(done)
				return
			}
			pong <- n - 1
		}
	}()
	n := rounds
	for n > 0 {
		ping <- n
		n = <-pong
	}
	ping <- 0
	<-done
}

func measureTime(callback func(), runnerName string) {
	startTime := time.Now()
	callback()
	fmt.Printf("%s Runner completed rounds in: %v\n", runnerName, time.Since(startTime))
}

func main() {
	for _, size := range throughput {
		fmt.Printf("With round count: %d\n\n", size)
		measureTime(func() { chanPingPong(size) }, "Channel")
		measureTime(func() { coroPingPong(size) }, "Coroutine")
		fmt.Print("====================================================================\n\n")
	}
}
