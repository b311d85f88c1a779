// Package main provides the entry point for the crateclean CLI.
package main

import (
	"os"

	"github.com/tobyrandall/crateclean/pkg/crateclean/logging"
)

func main() {
	err := Execute()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}
