package main

import "github.com/deepnoodle-ai/skillet/cmd/skillet/cli"

func main() {
	cli.Execute()
}
