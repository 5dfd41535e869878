package main

import "github.com/projecthub/cmd"

func main() {
	cmd.Execute()
}
