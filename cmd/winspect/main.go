package main

import (
	"github.com/mchmarny/winspect/pkg/cli"
)

func main() {
	cli.Execute()
}
