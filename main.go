package main

import "github.com/TheFriendlyCoder/friendlyshell/cmd"

func main() {
	cmd.Execute()
}
