package main

import "github.com/maheshrc27/postcal/cmd/postcal/commands"

func main() {
	commands.Execute()
}
