package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quillpress/internal/build"
	"quillpress/internal/domain/config"
	"quillpress/internal/logging"
	"quillpress/internal/watch"
)

type cliState struct {
	configPath string
	verbose    bool

	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:           "quillpress",
		Short:         "Build a static site from front-matter annotated markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return fmt.Errorf("load config %s: %w", st.configPath, err)
			}
			st.cfg = cfg
			st.log = logging.New(st.verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.log != nil {
				_ = st.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&st.configPath, "config", "c", "site.yaml", "path to the site configuration")
	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(newBuildCmd(st), newWatchCmd(st), newCheckLinksCmd(st))
	return root
}

func newBuildCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Wipe the output directory and build the whole site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := &build.Builder{Cfg: st.cfg, Logger: st.log}
			_, err := b.Run(cmd.Context())
			return err
		},
	}
}

func newWatchCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Build, then rebuild whenever content, templates or theme files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := &build.Builder{Cfg: st.cfg, Logger: st.log}
			if _, err := b.Run(cmd.Context()); err != nil {
				st.log.Error("initial build failed", zap.Error(err))
			}
			var dirs []string
			for _, d := range []string{st.cfg.Build.ContentDir, st.cfg.Build.TemplateDir, st.cfg.Build.StaticDir} {
				if d != "" {
					dirs = append(dirs, d)
				}
			}
			w := &watch.Watcher{
				Dirs: dirs,
				Rebuild: func(ctx context.Context) error {
					b.Cfg.Build.Now = time.Now()
					_, err := b.Run(ctx)
					return err
				},
				Logger: st.log.Named("watch"),
			}
			return w.Run(cmd.Context())
		},
	}
}

func newCheckLinksCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "check-links",
		Short: "Report dangling and malformed links against the existing output tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := &build.Builder{Cfg: st.cfg, Logger: st.log}
			warnings, err := b.CheckLinks(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d link warning(s)\n", len(warnings))
			return nil
		},
	}
}
