package main

import "github.com/grit-scm/grit/cmd"

func main() {
	cmd.Execute()
}
