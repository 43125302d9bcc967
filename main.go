package main

import "github.com/iksnae/talk-to-data/cmd"

func main() {
	cmd.Execute()
}
