package main

import (
	"github.com/simlink/simlink.go/pkg/cli"
)

func init() {
	cli.SetupFlags()
}

func main() {
	cli.Main()
}
