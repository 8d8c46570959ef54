// Package cli wires the niri-workspaces commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"niri-workspaces/internal/wm"
	"niri-workspaces/pkg/config"
	"niri-workspaces/pkg/logger"
)

const Version = "1.0.0"

// Options configures the root command. LogOptions are applied after the
// level chosen by --debug.
type Options struct {
	LogOptions []logger.Option
}

type rootState struct {
	opts       Options
	configPath string
	debug      bool
	socket     string

	log *logger.Logger
	cfg config.Config
}

// NewRootCommand builds the command tree.
func NewRootCommand(opts Options) *cobra.Command {
	s := &rootState{opts: opts}

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Show niri workspaces with the icons of their windows",
		Long:          "Keeps a per-workspace icon view in sync with the niri compositor and prints it for waybar or shows it in a small window.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&s.configPath, "config", "", "path to config file")
	root.PersistentFlags().BoolVar(&s.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&s.socket, "socket", "", "path to the niri socket (default $NIRI_SOCKET)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return s.setup()
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if s.log != nil {
			s.log.Close()
		}
	}

	root.AddCommand(
		newRunCommand(s),
		newSnapshotCommand(s),
		newFocusCommand(s),
		newIconsCommand(s),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	root := NewRootCommand(Options{LogOptions: []logger.Option{logger.WithConsole()}})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (s *rootState) setup() error {
	logLevel := zerolog.InfoLevel
	if s.debug {
		logLevel = zerolog.DebugLevel
	}

	log, err := logger.NewLogger(append([]logger.Option{logger.WithLevel(logLevel)}, s.opts.LogOptions...)...)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	s.log = log

	log.Info("Starting niri-workspaces",
		"version", Version,
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", s.debug)

	cfg, err := config.FindConfig(s.configPath, log)
	if err != nil {
		log.Error("Failed to load configuration", err, "provided_path", s.configPath)
		return err
	}
	log.Info("Configuration loaded successfully",
		"icon_count", len(cfg.Icons),
		"reconnect_attempts", cfg.Reconnect.Attempts)
	s.cfg = cfg
	return nil
}

// session resolves the niri socket: --socket, then the config file, then
// $NIRI_SOCKET.
func (s *rootState) session() (*wm.Session, error) {
	override := s.socket
	if override == "" {
		override = s.cfg.Socket
	}
	return wm.Detect(override, s.log)
}

func writeLine(w io.Writer, data []byte) error {
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
