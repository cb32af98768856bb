// Command wheel runs wheel pickers in a terminal, renders wheel frames to
// PNG and follows remote wheels over websockets.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/wheel/cmd/wheel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
