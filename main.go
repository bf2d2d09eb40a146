package main

import (
	"os"

	"github.com/tmakino/kotoba/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
