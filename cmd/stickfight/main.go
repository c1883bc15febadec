package main

import (
	"github.com/stickfight/server/internal/cli"
)

func main() {
	cli.Execute()
}
