package main

import "github.com/dzserver/dayzctl/cmd"

func main() {
	cmd.Execute()
}
