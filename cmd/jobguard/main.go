package main

import "github.com/jobguard/jobguard/internal/cli"

func main() {
	cli.Execute()
}
