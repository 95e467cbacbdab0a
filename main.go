package main

import (
	"os"

	"github.com/pymaker/pymaker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
