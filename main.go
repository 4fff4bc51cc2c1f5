package main

import "github.com/kozaktomas/huetone/cmd"

func main() {
	cmd.Execute()
}
