package main

import (
	"watchdog/internal/cli"
)

func main() {
	cli.Execute()
}
