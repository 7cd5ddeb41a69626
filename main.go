package main

import "github.com/umpire-scm/umpire/cmd"

func main() {
	cmd.Execute()
}
