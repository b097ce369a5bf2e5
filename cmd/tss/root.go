package main

import (
	"github.com/spf13/cobra"

	"bennypowers.dev/tss/internal/config"
	"bennypowers.dev/tss/internal/version"
	"bennypowers.dev/tss/style"
)

// options are the flags shared by every command
type options struct {
	configPath string
	theme      string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "tss",
		Short:         "tss – terminal stylesheet tool",
		Long:          "tss checks terminal stylesheets and shows how they style a widget tree.",
		Version:       version.Full(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "Configuration file")
	root.PersistentFlags().StringVar(&opts.theme, "theme", "", "Theme to activate (overrides the config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newCheckCmd(opts),
		newResolveCmd(opts),
		newTreeCmd(opts),
		newThemesCmd(opts),
		newVarsCmd(opts),
	)
	return root
}

// loadConfig reads the config file and applies the flags that were set
func (o *options) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = o.theme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	// one-shot commands never poll
	cfg.Watch = false
	return cfg, cfg.Validate()
}

// manager builds a style manager from the config, plus any stylesheet
// paths given as arguments
func (o *options) manager(cmd *cobra.Command, stylesheets []string) (*style.Manager, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.Stylesheets = append(cfg.Stylesheets, stylesheets...)
	return style.NewManagerFromConfig(cfg)
}
