// rotary is a rotary phone dialing simulator.
package main

import (
	"fmt"
	"os"

	"rotary-phone/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
