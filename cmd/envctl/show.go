package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yanizio/webstack/internal/config"
)

func newShowCommand(g *globals) *cobra.Command {
	var keysOnly bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := config.LoadConfiguration(g.resolvedMode(), g.resolvedDir())
			if err != nil {
				return err
			}
			if keysOnly {
				for _, k := range doc.TopLevelKeys() {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			}
			out, err := doc.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&keysOnly, "keys", false, "print only the top-level keys")
	return cmd
}

func newGetCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "get <dotted.key>",
		Short: "Print one value of the merged configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.LoadConfiguration(g.resolvedMode(), g.resolvedDir())
			if err != nil {
				return err
			}
			val, err := doc.Get(args[0])
			if err != nil {
				return err
			}
			switch val.(type) {
			case map[string]interface{}, []interface{}:
				out, err := yaml.Marshal(val)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			default:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), val)
				return err
			}
		},
	}
}
