package main

import "parking-ops/cmd"

func main() {
	cmd.Execute()
}
