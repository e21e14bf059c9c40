package main

import "github.com/travelcraft/travelcraft/cmd/tripctl/cmd"

func main() {
	cmd.Execute()
}
