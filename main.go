package main

import "pitwallbot/cmd"

func main() {
	cmd.Execute()
}
