package main

import "lifetracker/cmd/lt/root"

func main() {
	root.Execute()
}
