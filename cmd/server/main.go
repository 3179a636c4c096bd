package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/blues/launchpad/internal/config"
	"github.com/blues/launchpad/internal/logger"
	"github.com/blues/launchpad/internal/seed"
	"github.com/blues/launchpad/internal/share"
	"github.com/spf13/cobra"
)

var (
	configPath    string
	sharePlatform string
)

var rootCmd = &cobra.Command{
	Use:   "launchpad",
	Short: "Token launchpad service",
	Long: `Token launchpad service: project listings, token sale contributions
and share links over an HTTP API backed by an in-memory or PostgreSQL store.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the project status scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd)
	},
}

var shareCmd = &cobra.Command{
	Use:   "share <project-id>",
	Short: "Print share links for a seeded project",
	Args:  cobra.ExactArgs(1),
	RunE:  printShareLinks,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: ./config.yaml)")
	shareCmd.Flags().StringVarP(&sharePlatform, "platform", "p", "", "only print the link for Twitter or Farcaster")
	rootCmd.AddCommand(serveCmd, shareCmd)
}

func main() {
	// SIGINT/SIGTERM 触发优雅退出
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command) error {
	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if _, err := logger.Setup(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	return run(cmd.Context(), cfg)
}

func printShareLinks(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid project id %q", args[0])
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	data, err := seed.Load(cfg.Store.SeedFile)
	if err != nil {
		return err
	}

	for _, p := range data.Projects {
		if p.ID != id {
			continue
		}
		out := cmd.OutOrStdout()
		if sharePlatform != "" {
			link, err := share.URL(share.Platform(sharePlatform), share.ProjectText(p),
				share.ProjectPageURL(cfg.Share.BaseURL, p.ID), cfg.Share.Hashtags)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, link)
			return nil
		}

		links := share.ProjectLinks(p, cfg.Share.BaseURL, cfg.Share.Hashtags)
		fmt.Fprintf(out, "page:      %s\n", links.PageURL)
		fmt.Fprintf(out, "twitter:   %s\n", links.Twitter)
		fmt.Fprintf(out, "farcaster: %s\n", links.Farcaster)
		return nil
	}
	return fmt.Errorf("project %d not found in seed data", id)
}
