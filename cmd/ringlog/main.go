package main

import "github.com/calder-robotics/ringlog/cmd/ringlog/cmd"

func main() {
	cmd.Execute()
}
