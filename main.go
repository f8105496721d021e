package main

import "github.com/dds-tracker/backend/internal/cli"

func main() {
	cli.Execute()
}
