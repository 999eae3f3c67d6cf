package main

import "alchemy/cmd"

func main() {
	cmd.Execute()
}
