package main

import "github.com/jlaasanen/meeple/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
