package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/xqparse/config"
	"github.com/dhamidi/xqparse/workspace"
	"github.com/dhamidi/xqparse/xquery/dialect"
)

// settings are the persistent flags merged over the configuration file.
type settings struct {
	configPath string
	verbosity  int
	logFile    string
	enable     []string
	disable    []string
	xpath      bool
	noColor    bool

	cfg config.Config
}

func (s *settings) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&s.configPath, "config", "c", "", "configuration file (default: .xqparse.yaml or .xqparse.toml in the working directory)")
	flags.CountVarP(&s.verbosity, "verbose", "v", "increase log verbosity")
	flags.StringVar(&s.logFile, "log", "", "log to this file instead of stderr")
	flags.StringSliceVar(&s.enable, "enable", nil, "enable grammar specifications (fulltext10, saxon94, saxon98, ...)")
	flags.StringSliceVar(&s.disable, "disable", nil, "disable grammar specifications")
	flags.BoolVar(&s.xpath, "xpath", false, "parse input as a standalone XPath expression")
	flags.BoolVar(&s.noColor, "no-color", false, "disable colored output")
}

func (s *settings) load(cmd *cobra.Command) error {
	cfg := config.Default()
	path := s.configPath
	if path == "" {
		path, _ = config.Find(".")
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	for _, name := range s.enable {
		spec, err := dialect.ParseSpec(name)
		if err != nil {
			return err
		}
		cfg.Config = cfg.Config.With(spec)
	}
	for _, name := range s.disable {
		spec, err := dialect.ParseSpec(name)
		if err != nil {
			return err
		}
		cfg.Config = cfg.Config.Without(spec)
	}
	if s.xpath {
		cfg.Language = dialect.XPath
	}

	if s.noColor {
		color.NoColor = true
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Log.Verbosity = s.verbosity
	}
	if flags.Changed("log") {
		cfg.Log.File = s.logFile
	}
	s.cfg = cfg

	if cfg.Log.File != "" {
		commonlog.Configure(cfg.Log.Verbosity, &cfg.Log.File)
	} else {
		commonlog.Configure(cfg.Log.Verbosity, nil)
	}
	commonlog.GetLogger("xqparse").Debugf("dialect %s", cfg.Dialect())
	return nil
}

func (s *settings) workspace(rootDir string) *workspace.Workspace {
	return workspace.New(rootDir, s.cfg.Dialect(), s.workspaceOptions()...)
}

func (s *settings) workspaceOptions() []workspace.Option {
	return []workspace.Option{
		workspace.WithExtensions(s.cfg.Check.Extensions...),
		workspace.WithJobs(s.cfg.Check.Jobs),
	}
}
