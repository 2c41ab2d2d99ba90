// Package server exposes the clock renderer as Model Context Protocol tools.
package server

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mj1618/clockface/internal/clock"
	"github.com/mj1618/clockface/internal/export"
	"github.com/mj1618/clockface/internal/render"
	"github.com/mj1618/clockface/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	// CacheTTL bounds how long encoded frames for explicit times are kept.
	// Zero disables the frame cache.
	CacheTTL time.Duration

	// MaxSize caps the width and height render_clock accepts. Zero means
	// DefaultMaxSize.
	MaxSize int

	// Defaults for tool arguments the caller leaves out.
	Size     image.Point
	Mode     render.Mode
	Location *time.Location
	Palette  *render.Palette

	Clock  clock.Clock
	Logger *zap.Logger
}

// DefaultMaxSize is the largest render_clock side unless Config.MaxSize says
// otherwise.
const DefaultMaxSize = 4096

// Server wraps the MCP server with a shared renderer. The renderer keeps a
// single static layer, so calls are serialized through renderMu and
// consecutive calls with the same geometry reuse it.
type Server struct {
	cfg      Config
	renderer *render.Renderer
	renderMu sync.Mutex
	frames   *FrameCache
	logger   *zap.Logger
	mcp      *mcpserver.MCPServer
}

// New creates and configures an MCP server with all clockface tools.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	cfg.MaxSize = min(cfg.MaxSize, render.MaxDimension)
	if cfg.Size.X <= 0 || cfg.Size.Y <= 0 {
		cfg.Size = image.Pt(512, 512)
	}

	opts := []render.Option{render.WithLogger(cfg.Logger)}
	if cfg.Palette != nil {
		opts = append(opts, render.WithPalette(*cfg.Palette))
	}

	s := &Server{
		cfg:      cfg,
		renderer: render.New(opts...),
		frames:   NewFrameCache(cfg.CacheTTL),
		logger:   cfg.Logger.Named("mcp"),
	}
	s.mcp = mcpserver.NewMCPServer(
		"clockface",
		version.Version,
		mcpserver.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

// SetPalette switches the renderer to new colors. Cached frames were encoded
// with the old colors and are dropped.
func (s *Server) SetPalette(p render.Palette) {
	s.renderMu.Lock()
	s.renderer.SetPalette(p)
	s.renderMu.Unlock()
	s.frames.InvalidateAll()
	s.logger.Info("palette updated, caches cleared")
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve() error {
	s.logger.Info("serving", zap.String("transport", s.cfg.Transport), zap.Int("port", s.cfg.Port))
	switch s.cfg.Transport {
	case "", "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// render_clock
	s.mcp.AddTool(
		mcp.NewTool("render_clock",
			mcp.WithDescription("Render the analog clock face as an image. Returns the encoded image plus a short summary."),
			mcp.WithNumber("width", mcp.Description(fmt.Sprintf("Canvas width in pixels (1-%d)", s.cfg.MaxSize))),
			mcp.WithNumber("height", mcp.Description(fmt.Sprintf("Canvas height in pixels (1-%d)", s.cfg.MaxSize))),
			mcp.WithString("time", mcp.Description("Wall-clock time HH:MM[:SS[.fff]] (default: now)")),
			mcp.WithString("timezone", mcp.Description("IANA time zone, e.g. 'Europe/Paris' (default: server zone)")),
			mcp.WithBoolean("preview", mcp.Description("Use the small fixed preview margin")),
			mcp.WithBoolean("transparent", mcp.Description("Leave the background transparent")),
			mcp.WithString("format", mcp.Description("Image format: png, jpg, bmp, tiff")),
			mcp.WithString("label", mcp.Description("Stamp this text in the bottom-left corner")),
		),
		s.handleRenderClock,
	)

	// clock_angles
	s.mcp.AddTool(
		mcp.NewTool("clock_angles",
			mcp.WithDescription("Compute the hour, minute and second hand angles for a time. Angles are in radians and degrees, 0 at three o'clock, counter-clockwise positive."),
			mcp.WithString("time", mcp.Description("Wall-clock time HH:MM[:SS[.fff]] (default: now)")),
			mcp.WithString("timezone", mcp.Description("IANA time zone (default: server zone)")),
		),
		s.handleClockAngles,
	)

	// export_icons
	s.mcp.AddTool(
		mcp.NewTool("export_icons",
			mcp.WithDescription("Write the static icon set (512 and 1024 pixel renders at 10:10:30) into a directory"),
			mcp.WithString("dir", mcp.Required(), mcp.Description("Output directory")),
			mcp.WithString("format", mcp.Description("Image format: png, jpg, bmp, tiff")),
			mcp.WithBoolean("iconset", mcp.Description("Also write downscaled 16-256 pixel icons")),
		),
		s.handleExportIcons,
	)

	// renderer_stats
	s.mcp.AddTool(
		mcp.NewTool("renderer_stats",
			mcp.WithDescription("Report static layer cache hits and regenerations of the shared renderer"),
		),
		s.handleRendererStats,
	)
}

// resolveTime returns the instant described by the time and timezone
// arguments. explicit reports whether a time was given.
func (s *Server) resolveTime(params map[string]interface{}) (t time.Time, explicit bool, err error) {
	loc := s.cfg.Location
	if tz := stringParam(params, "timezone", ""); tz != "" {
		if loc, err = clock.LoadLocation(tz); err != nil {
			return time.Time{}, false, err
		}
	}
	if at := stringParam(params, "time", ""); at != "" {
		t, err = clock.ParseClockTime(at, loc)
		return t, true, err
	}
	return s.cfg.Clock.Now().In(loc), false, nil
}

// exportFormat validates the format argument.
func exportFormat(params map[string]interface{}) (string, error) {
	return export.NormalizeFormat(stringParam(params, "format", "png"))
}
