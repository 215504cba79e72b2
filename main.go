package main

import "teachgrab/cmd"

func main() {
	cmd.Execute()
}
