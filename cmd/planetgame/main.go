package main

import "github.com/mcoot/planetgame/internal/cli"

func main() {
	cli.Execute()
}
