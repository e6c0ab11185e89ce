package main

import (
	"github.com/byxorna/cafes/cmd"
)

func main() {
	cmd.Execute()
}
