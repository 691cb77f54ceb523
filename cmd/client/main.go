package main

import "budgetkeeper/cmd/client/cmd"

func main() {
	cmd.Execute()
}
