package main

import "github.com/LeJamon/go-crypto-conditions/internal/cli"

func main() {
	cli.Execute()
}
