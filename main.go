package main

import "github.com/kozaktomas/photo-cull/cmd"

func main() {
	cmd.Execute()
}
