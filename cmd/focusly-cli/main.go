package main

import "focusly/cmd/focusly-cli/cmd"

func main() {
	cmd.Execute()
}
