package main

import "github.com/user/cvetriage/cmd"

func main() {
	cmd.Execute()
}
