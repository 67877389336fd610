// Plain server entrypoint for container images; the vitrine CLI wraps
// the same bootstrap with management commands.
package main

import (
	"fmt"
	"os"

	"github.com/shashiranjanraj/vitrine/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
