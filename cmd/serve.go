package cmd

import (
	"fmt"
	"image"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj1618/clockface/internal/config"
	"github.com/mj1618/clockface/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing clockface tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes clock rendering
as tools. AI agents can call tools directly without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  clockface serve
  clockface serve --transport streamable-http --port 8080
  clockface serve --cache-ttl 0
  clockface serve --watch           # pick up palette edits without a restart`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 60000, "Encoded frame cache TTL in milliseconds for explicit times (0 to disable)")
	serveCmd.Flags().Int("max-size", server.DefaultMaxSize, "Largest width or height render_clock accepts")
	serveCmd.Flags().Bool("watch", false, "Reload the palette when the config file changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	maxSize, _ := cmd.Flags().GetInt("max-size")
	watch, _ := cmd.Flags().GetBool("watch")

	loc, err := appConfig.Location()
	if err != nil {
		return err
	}
	palette, err := appConfig.RenderPalette()
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}

	srv := server.New(server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
		MaxSize:   maxSize,
		Size:      image.Pt(appConfig.Width, appConfig.Height),
		Mode:      appConfig.RenderMode(),
		Location:  loc,
		Palette:   &palette,
		Logger:    appLogger,
	})

	if watch {
		loader, err := watchConfig(func(cfg *config.Config) {
			p, err := cfg.RenderPalette()
			if err != nil {
				appLogger.Warn("palette reload failed", zap.Error(err))
				return
			}
			srv.SetPalette(p)
		})
		if err != nil {
			return err
		}
		defer loader.Close()
	}
	return srv.Serve()
}
