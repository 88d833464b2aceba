package main

import "github.com/dcode-github/realty_portal/commands"

func main() {
	commands.Execute()
}
