package main

import "courtside/cmd/courtside-admin/cmd"

func main() {
	cmd.Execute()
}
