package main

import (
	"os"

	parleycmder "github.com/parleyco/parley/cmd/parley"
)

func main() {
	cmd := parleycmder.NewParleyCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
