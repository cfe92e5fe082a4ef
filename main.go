package main

import "github.com/gigante-rh/talent-intake/cmd"

func main() {
	cmd.Execute()
}
