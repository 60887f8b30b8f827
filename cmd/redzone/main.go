package main

import (
	"os"

	"github.com/redzonehq/redzone/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
