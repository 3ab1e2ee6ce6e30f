package main

import "xwitter/internal/cmd"

func main() {
	cmd.Run()
}
