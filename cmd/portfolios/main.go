package main

import "github.com/katalvlaran/portfolios/cmd"

func main() {
	cmd.Execute()
}
