package main

import (
	"os"

	"pitchcraft/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
