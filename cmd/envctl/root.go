package main

import (
	"github.com/spf13/cobra"

	"github.com/yanizio/webstack/internal/config"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	mode string
	dir  string
}

func (g *globals) resolvedMode() config.Mode { return config.ParseMode(g.mode) }

func (g *globals) resolvedDir() string {
	if g.dir != "" {
		return g.dir
	}
	return config.DefaultDir()
}

func newRootCommand(sel config.Selection, version string) *cobra.Command {
	g := &globals{mode: sel.Mode, dir: sel.Dir}

	rootCmd := &cobra.Command{
		Use:   "envctl",
		Short: "Inspect webstack configuration and run tools with its secrets",
		Long: `envctl resolves the same configuration the CDK app uses: the base
document, the mode overlay document, and the mode secrets file, all read
from the configuration directory (default ./env).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.mode, "mode", g.mode, "deployment mode: dev or prod (default from MODE)")
	rootCmd.PersistentFlags().StringVar(&g.dir, "dir", g.dir, "configuration directory (default from WEBSTACK_ENV_DIR or ./env)")

	rootCmd.AddCommand(
		newShowCommand(g),
		newGetCommand(g),
		newExecCommand(g),
	)
	return rootCmd
}
