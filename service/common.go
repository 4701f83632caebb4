package service

import (
	"fmt"
	"os"

	"blog/app/config"
	"blog/app/repositories"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// configPath is a variable to allow testing with different files
var configPath = config.DefaultPath

// isTerminal reports whether confirmations can be asked interactively.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func loadConfig() (config.Config, error) {
	if p := os.Getenv("BLOG_CONFIG"); p != "" {
		return config.Load(p)
	}
	return config.Load(configPath)
}

func openStore(cfg config.Config, log *zap.Logger) (*repositories.Store, error) {
	return repositories.Open(repositories.Options{
		Driver: cfg.Storage.Driver,
		Path:   cfg.Storage.Path,
		DSN:    cfg.Storage.DSN,
		Logger: log,
	})
}

// confirm asks a yes/no question on the terminal. Without a terminal only
// an explicit --yes proceeds.
func confirm(question string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	if !isTerminal() {
		fmt.Println("Not running in a terminal; pass --yes to confirm")
		return false
	}
	fmt.Printf("%s [y/N] ", question)
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}

// splitFlags separates --yes/-y from the positional arguments.
func splitFlags(args []string) (rest []string, yes bool) {
	for _, a := range args {
		switch a {
		case "--yes", "-y":
			yes = true
		default:
			rest = append(rest, a)
		}
	}
	return rest, yes
}
