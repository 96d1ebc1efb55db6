package main

import "github.com/tessro/spot/internal/cli"

func main() {
	cli.Execute()
}
