package main

import "github.com/nathfavour/blubot/internal/cli"

func main() {
	cli.Execute()
}
