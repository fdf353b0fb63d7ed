package main

import "github.com/couchcryptid/hurdat2-etl/internal/cli"

func main() {
	cli.Execute()
}
