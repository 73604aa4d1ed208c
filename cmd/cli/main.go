package main

import (
	"os"

	"github.com/storekeep-dev/storekeep/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
