package main

import (
	"github.com/custodia-labs/novella-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
