// Command galeria runs the galeria API.
//
//	galeria serve [--migrate]   start the HTTP server
//	galeria migrate             apply database migrations and exit
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
