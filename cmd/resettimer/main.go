package main

import "github.com/example/reset-timer/internal/interfaces/cli"

func main() {
	cli.Execute()
}
