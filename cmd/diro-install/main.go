package main

import (
	"os"

	installer "github.com/diro-app/diro_installer"
)

func main() {
	os.Exit(installer.Run())
}
