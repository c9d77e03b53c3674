package main

import "pvp-pipeline/cmd"

func main() {
	cmd.Execute()
}
