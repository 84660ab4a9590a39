package main

import (
	"os"

	"github.com/masmgr/changelog-gen/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args))
}
