package main

import "poodle/cmd"

func main() {
	cmd.Execute()
}
