package main

import "github.com/rolodexd/rolodex/cmd"

func main() {
	cmd.Execute()
}
