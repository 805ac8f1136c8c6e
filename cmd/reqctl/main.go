package main

import "reqctl/internal/cli"

func main() {
	cli.Execute()
}
