package main

import "github.com/keydoro/keydoro/cmd"

func main() {
	cmd.Execute()
}
