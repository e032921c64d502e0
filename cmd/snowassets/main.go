package main

import (
	"os"

	"github.com/opsforge/snowassets/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
