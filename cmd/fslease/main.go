package main

import "github.com/fslease-project/fslease/internal/cli"

func main() {
	cli.Execute()
}
