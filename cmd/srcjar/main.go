package main

import (
	"github.com/anchore/srcjar/cmd"
)

func main() {
	cmd.Execute()
}
