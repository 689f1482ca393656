package main

import "github.com/LegacyCodeHQ/minipack/cmd"

func main() {
	cmd.Execute()
}
