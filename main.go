package main

import "moneyball/cmd"

func main() {
	cmd.Execute()
}
