package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/tss/internal/config"
	"bennypowers.dev/tss/internal/paint"
	"bennypowers.dev/tss/internal/styleerr"
	"bennypowers.dev/tss/internal/values"
	"bennypowers.dev/tss/internal/widget"
	"bennypowers.dev/tss/style"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [stylesheet...]",
		Short: "Report errors in stylesheets",
		Long:  "Load the configured stylesheets and any given on the command line, and report every problem found.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			entries := append(cfg.Stylesheets, args...)
			cfg.Stylesheets = nil
			m, err := style.NewManagerFromConfig(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var found []error
			for _, entry := range entries {
				var err error
				if config.HasGlob(entry) {
					err = m.WatchStylesheets(entry)
				} else {
					err = m.LoadUserStylesheetFile(entry)
				}
				found = append(found, problems(err)...)
			}
			for _, err := range found {
				fmt.Fprintln(out, err)
			}
			fmt.Fprintf(out, "%d rules, %d problems\n", len(m.StyleSheet().Rules()), len(found))
			if len(found) > 0 {
				return fmt.Errorf("found %d problems", len(found))
			}
			return nil
		},
	}
}

// problems splits the error of a load into one error per problem
func problems(err error) []error {
	switch e := err.(type) {
	case nil:
		return nil
	case *styleerr.ParseErrors:
		return e.Errors
	case *styleerr.UnsupportedSelectorError:
		return []error{e}
	case interface{ Unwrap() []error }:
		var result []error
		for _, inner := range e.Unwrap() {
			result = append(result, problems(inner)...)
		}
		return result
	}
	return []error{err}
}

func newResolveCmd(opts *options) *cobra.Command {
	var ancestors []string
	cmd := &cobra.Command{
		Use:   "resolve NODE [stylesheet...]",
		Short: "Show the computed style of a node",
		Long: `Resolve the style of a node written in selector syntax, for example
"Button#ok.primary:focus". Ancestors are given root first with --ancestor.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := widget.ParseMeta(args[0])
			if err != nil {
				return err
			}
			chain := make([]widget.Meta, len(ancestors))
			for i, text := range ancestors {
				if chain[i], err = widget.ParseMeta(text); err != nil {
					return err
				}
			}

			m, err := opts.manager(cmd, args[1:])
			if err != nil {
				return err
			}
			cs := m.GetStyle(1, node, chain)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, describeChain(chain, node))
			for _, name := range cs.Properties() {
				fmt.Fprintf(out, "  %s: %s;\n", name, cs.Get(name))
			}

			screen, err := values.ParseColor(m.Variables()["background"])
			if err != nil {
				screen = values.Black
			}
			colors := paint.Resolve(cs, screen)
			fmt.Fprintf(out, "rendered: %s on %s\n", colors.Foreground, colors.Background)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&ancestors, "ancestor", nil, "Ancestor node, root first (repeatable)")
	return cmd
}

func describeChain(ancestors []widget.Meta, node widget.Meta) string {
	parts := make([]string, 0, len(ancestors)+1)
	for _, a := range ancestors {
		parts = append(parts, a.String())
	}
	return strings.Join(append(parts, node.String()), " > ")
}

func newTreeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [stylesheet...]",
		Short: "Print the merged stylesheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.manager(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), m.StyleSheet().Dump())
			return nil
		},
	}
}

func newThemesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.manager(cmd, nil)
			if err != nil {
				return err
			}
			for _, name := range m.Themes() {
				marker := " "
				if name == m.ActiveTheme() {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func newVarsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "vars [prefix]",
		Short: "List the variables of the active theme and stylesheets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.manager(cmd, nil)
			if err != nil {
				return err
			}
			vars := m.Variables()
			names := make([]string, 0, len(vars))
			for name := range vars {
				if len(args) == 0 || strings.HasPrefix(name, args[0]) {
					names = append(names, name)
				}
			}
			if len(names) == 0 {
				return errors.New("no matching variables")
			}
			slices.Sort(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "$%s: %s;\n", name, vars[name])
			}
			return nil
		},
	}
}
