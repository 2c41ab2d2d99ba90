package main

import (
	_ "time/tzdata"

	"github.com/mj1618/clockface/cmd"
)

func main() {
	cmd.Execute()
}
