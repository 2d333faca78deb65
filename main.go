package main

import "hydrorag/cmd"

func main() {
	cmd.Execute()
}
