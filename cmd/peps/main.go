package main

import (
	"github.com/emrgen/peps/cmd"
)

func main() {
	cmd.Execute()
}
