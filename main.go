package main

import "github.com/stevehiehn/plix/cmd"

func main() {
	cmd.Execute()
}
