package main

import (
	"os"

	"github.com/freightops/loadmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
