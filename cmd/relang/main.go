package main

import "github.com/whit3rabbit/relang/cmd/relang/cmd"

func main() {
	cmd.Execute()
}
