package main

import "github.com/ragsynth/go-ragsynth/cli"

func main() {
	cli.Execute()
}
