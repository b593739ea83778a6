package main

import "github.com/mcoot/quintrical/internal/cli"

func main() {
	cli.Execute()
}
