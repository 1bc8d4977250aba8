package main

import (
	"os"

	"github.com/gokatarajesh/wikiquiz/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
