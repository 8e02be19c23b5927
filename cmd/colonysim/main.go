package main

import (
	"github.com/andrescamacho/colonysim-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
