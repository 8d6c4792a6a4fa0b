package main

import (
	"github.com/axellelanca/qrlinks/cmd"
	_ "github.com/axellelanca/qrlinks/cmd/cli"
	_ "github.com/axellelanca/qrlinks/cmd/server"
)

func main() {
	cmd.Execute()
}
