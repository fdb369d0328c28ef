// Package commands implements the viewkit command line.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agiangrant/viewkit"
	"github.com/agiangrant/viewkit/internal/logging"
	"github.com/agiangrant/viewkit/retained"
)

// Execute runs the root command
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

// NewRootCmd builds the command tree. Each call gets its own viper instance
// so tests can run commands side by side.
func NewRootCmd(version string) *cobra.Command {
	root, _ := newRoot(version)
	return root
}

func newRoot(version string) (*cobra.Command, *viper.Viper) {
	v := viper.New()
	v.SetEnvPrefix("VIEWKIT")
	// VIEWKIT_ENGINE_SCROLLBAR_THICKNESS for engine.scrollbar_thickness
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "viewkit",
		Short: "Lay out and inspect retained view scenes",
		Long: `viewkit builds view trees from TOML scene files, runs box layout and
scroll view bookkeeping over them and prints the result.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "config file (default is viewkit.toml, searched upward)")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-format", "", "log format: text or json")
	pf.String("log-file", "", "write logs to this file instead of stderr")
	pf.Float32("scrollbar-thickness", retained.DefaultScrollBarThickness, "viewport space reserved by a visible scroll bar")
	pf.String("reparent-policy", "", "what adding an attached child does: auto-detach or strict")
	pf.String("scrollbar-mode", "", "default scroll bar mode: enabled, disabled or automatic")

	_ = v.BindPFlag("config", pf.Lookup("config"))
	_ = v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = v.BindPFlag("log.file", pf.Lookup("log-file"))
	_ = v.BindPFlag("engine.scrollbar_thickness", pf.Lookup("scrollbar-thickness"))
	_ = v.BindPFlag("engine.reparent_policy", pf.Lookup("reparent-policy"))
	_ = v.BindPFlag("engine.default_scrollbar_mode", pf.Lookup("scrollbar-mode"))

	root.AddCommand(
		newLayoutCmd(v),
		newScrollCmd(v),
		newConfigCmd(v),
		newVersionCmd(version),
	)
	return root, v
}

// loadConfig reads the config file and overlays flags and VIEWKIT_*
// environment variables. It returns the file path used, "" if none.
func loadConfig(v *viper.Viper) (viewkit.Config, string, error) {
	path := v.GetString("config")
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = viewkit.FindConfig(wd)
		}
	}
	cfg, err := viewkit.LoadConfig(path)
	if err != nil {
		return cfg, path, err
	}
	if path == "" {
		if _, err := os.Stat(viewkit.ConfigFileName); err == nil {
			path = viewkit.ConfigFileName
		}
	}

	if v.IsSet("engine.scrollbar_thickness") {
		cfg.Engine.ScrollBarThickness = float32(v.GetFloat64("engine.scrollbar_thickness"))
	}
	if v.IsSet("engine.reparent_policy") {
		p, err := retained.ParseReparentPolicy(v.GetString("engine.reparent_policy"))
		if err != nil {
			return cfg, path, err
		}
		cfg.Engine.ReparentPolicy = p
	}
	if v.IsSet("engine.default_scrollbar_mode") {
		m, err := retained.ParseScrollBarMode(v.GetString("engine.default_scrollbar_mode"))
		if err != nil {
			return cfg, path, err
		}
		cfg.Engine.DefaultScrollBarMode = m
	}
	if v.IsSet("log.level") {
		cfg.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("log.format") {
		cfg.Log.Format = v.GetString("log.format")
	}
	if v.IsSet("log.file") {
		cfg.Log.File = v.GetString("log.file")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, path, err
	}
	return cfg, path, nil
}

// openLogger returns the logger for cfg.Log and a close func. Without a log
// file, output goes to w.
func openLogger(cfg viewkit.Config, w io.Writer) (*slog.Logger, func(), error) {
	if cfg.Log.File == "" {
		logger, err := viewkit.NewLogger(cfg, w)
		return logger, func() {}, err
	}
	logger, f, err := logging.Open(cfg.Log.File, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// session is the per-invocation state every subcommand starts from.
type session struct {
	cfg    viewkit.Config
	path   string
	logger *slog.Logger
	close  func()
}

func newSession(cmd *cobra.Command, v *viper.Viper) (*session, error) {
	cfg, path, err := loadConfig(v)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger, closeLog, err := openLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Debug("config loaded", "path", path)
	}
	return &session{cfg: cfg, path: path, logger: logger, close: closeLog}, nil
}

func (s *session) engine() (*retained.Engine, error) {
	return retained.NewEngine(s.cfg.Engine, s.logger)
}
