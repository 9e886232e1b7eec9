// Command regmock works with recorded register access fixtures.
package main

import (
	"log"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/regmock/cmd"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("regmock: ")

	if err := cmd.Execute(); err != nil {
		log.Print(err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
