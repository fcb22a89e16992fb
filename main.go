package main

import (
	"os"

	"github.com/eklix/mysql-faker/cmd"
)

func main() {
	err := cmd.Execute()
	os.Exit(cmd.ExitCode(err))
}
