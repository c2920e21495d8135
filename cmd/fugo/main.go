package main

import (
	"github.com/fugotrade/fugo/pkg/cmd"
)

func main() {
	cmd.Execute()
}
