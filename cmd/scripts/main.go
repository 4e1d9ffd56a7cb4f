// Command scripts runs the scripts REST API.
//
//	scripts serve    # serve HTTP, optionally migrating first (--migrate)
//	scripts migrate  # apply pending migrations and exit
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
