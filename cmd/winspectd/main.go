package main

import (
	"log"

	"github.com/mchmarny/winspect/pkg/api"
)

func main() {
	if err := api.Serve(nil); err != nil {
		log.Fatal(err)
	}
}
