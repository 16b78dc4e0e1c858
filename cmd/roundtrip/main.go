package main

import "github.com/deppfellow/roundtrip/internal/cli"

func main() {
	cli.Execute()
}
