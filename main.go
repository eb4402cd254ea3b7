package main

import "github.com/chriserin/stepdsl/cmd"

func main() {
	cmd.Execute()
}
