package main

import "github.com/example/frarold/cmd"

func main() {
	cmd.Execute()
}
