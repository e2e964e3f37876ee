// Command sigtrap is the minimal worker binary the dispatcher spawns
// for every process record. It does no real work: it sleeps in a loop
// and reacts only to the three signals the dispatcher ever sends it —
// SIGTSTP to suspend, SIGCONT to resume, SIGINT to terminate.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

func main() {
	remaining := 0
	if len(os.Args) > 1 {
		if v, err := strconv.Atoi(os.Args[1]); err == nil {
			remaining = v
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTSTP, syscall.SIGCONT, syscall.SIGINT)

	fmt.Printf("sigtrap: started, pid=%d, remaining_cpu_time=%d\n", os.Getpid(), remaining)

	for {
		select {
		case sig := <-sigs:
			switch sig {
			case syscall.SIGINT:
				fmt.Println("sigtrap: terminating")
				return
			case syscall.SIGTSTP:
				// Catching SIGTSTP replaces its default stop action, so
				// stop explicitly; the dispatcher's SIGCONT resumes us.
				_ = syscall.Kill(os.Getpid(), syscall.SIGSTOP)
			case syscall.SIGCONT:
				// The kernel has already resumed us; nothing else to do.
			}
		case <-time.After(time.Second):
		}
	}
}
