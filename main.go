package main

import (
	"fmt"
	"os"
	"strings"

	"blog/service"
)

// CliVersion is reported by the version command.
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args to the blog commands.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "version", "--version", "-v":
		fmt.Printf("blog version %s\n", CliVersion)
		exit(0)
	case "help", "--help", "-h":
		printHelp()
		exit(0)
	default:
		args := append([]string{cmd}, os.Args[2:]...)
		exit(service.HandleCommand(args))
	}
}

func printHelp() {
	service.HandleCommand([]string{"help"})
}
