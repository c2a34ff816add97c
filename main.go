package main

import "tasnif/cmd"

func main() {
	cmd.Execute()
}
