package main

import "github.com/jfmyers9/toptags/cmd"

func main() {
	cmd.Execute()
}
