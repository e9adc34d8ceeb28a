package main

import "cloud-sync/cmd"

func main() {
	cmd.Execute()
}
