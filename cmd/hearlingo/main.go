package main

import (
	"os"

	"github.com/patrickprogramme/hearlingo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
