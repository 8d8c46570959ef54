package main

import "niri-workspaces/internal/cli"

func main() {
	cli.Execute()
}
