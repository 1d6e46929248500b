// cmd/envctl/main.go
//
// envctl – inspect the merged configuration and run build tooling with the
// mode secrets overlay applied.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/yanizio/webstack/internal/config"
	"github.com/yanizio/webstack/internal/logger"
)

var version = "dev"

func main() {
	sel, err := config.ReadSelection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}
	if _, err := logger.New(sel.ResolvedRoot(), logger.StderrIsTTY()); err != nil {
		fmt.Fprintf(os.Stderr, "envctl: start logger: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCommand(sel, version).Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}
}
