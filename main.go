package main

import (
	"github.com/flagbot/flagbot/cmd"
)

func main() {
	cmd.Execute()
}
