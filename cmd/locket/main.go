package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/needlesslygrim/Locket/pkg/lock"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, lock.ErrAlreadyRunning) {
			fmt.Fprintln(os.Stderr, "an instance of locket is already running, please kill it or wait for it to quit before trying to run another instance")
		} else {
			fmt.Fprintln(os.Stderr, "locket:", err)
		}
		os.Exit(1)
	}
}
