package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/mj1618/clockface/internal/clock"
	"github.com/mj1618/clockface/internal/export"
	"github.com/mj1618/clockface/internal/output"
	"github.com/mj1618/clockface/internal/render"
)

// yamlResult serializes v to YAML for an MCP text response.
func yamlResult(v interface{}) *mcp.CallToolResult {
	s, err := output.YAMLString(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("yaml encode: %v", err))
	}
	return mcp.NewToolResultText(s)
}

func (s *Server) handleRenderClock(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	size := image.Pt(
		intParam(params, "width", s.cfg.Size.X),
		intParam(params, "height", s.cfg.Size.Y),
	)
	if size.X <= 0 || size.Y <= 0 || size.X > s.cfg.MaxSize || size.Y > s.cfg.MaxSize {
		return mcp.NewToolResultError(fmt.Sprintf("size %dx%d out of range: width and height must be 1-%d", size.X, size.Y, s.cfg.MaxSize)), nil
	}
	mode := render.Mode{
		Preview:               boolParam(params, "preview", s.cfg.Mode.Preview),
		TransparentBackground: boolParam(params, "transparent", s.cfg.Mode.TransparentBackground),
	}
	label := stringParam(params, "label", "")
	format, err := exportFormat(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	at, explicit, err := s.resolveTime(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := frameKey{
		Width:       size.X,
		Height:      size.Y,
		Preview:     mode.Preview,
		Transparent: mode.TransparentBackground,
		Format:      format,
		Label:       label,
		At:          at.Format(time.RFC3339Nano),
	}
	data, cached := s.frames.Get(key)
	if !cached {
		data, err = s.encodeFrame(size, at, mode, format, label)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if explicit {
			s.frames.Put(key, data)
		}
	}

	summary := output.RenderResult{
		Format:      format,
		Width:       size.X,
		Height:      size.Y,
		Time:        at.Format("15:04:05.000"),
		Preview:     mode.Preview,
		Transparent: mode.TransparentBackground,
		Bytes:       int64(len(data)),
	}
	text, err := output.YAMLString(summary)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultImage(text, base64.StdEncoding.EncodeToString(data), export.MIMEType(format)), nil
}

// encodeFrame renders one frame through the shared renderer and encodes it.
func (s *Server) encodeFrame(size image.Point, at time.Time, mode render.Mode, format, label string) ([]byte, error) {
	s.renderMu.Lock()
	img, err := s.renderer.Render(size, clock.Sample(at), mode)
	s.renderMu.Unlock()
	if err != nil {
		return nil, err
	}

	var frame image.Image = img
	if label != "" {
		frame = export.Annotate(img, label)
	}
	var buf bytes.Buffer
	if err := export.Encode(&buf, frame, format); err != nil {
		return nil, err
	}
	s.logger.Debug("frame rendered",
		zap.Int("width", size.X), zap.Int("height", size.Y),
		zap.String("format", format), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (s *Server) handleClockAngles(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	at, _, err := s.resolveTime(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(output.NewAnglesResult(at)), nil
}

func (s *Server) handleExportIcons(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	dir := stringParam(params, "dir", "")
	if dir == "" {
		return mcp.NewToolResultError("dir parameter is required"), nil
	}
	format, err := exportFormat(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.renderMu.Lock()
	files, err := export.Icons(dir, export.Options{
		Format:   format,
		Iconset:  boolParam(params, "iconset", false),
		Location: s.cfg.Location,
		Renderer: s.renderer,
		Logger:   s.logger,
	})
	s.renderMu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := output.ExportResult{
		Dir:    dir,
		Format: format,
		Time:   clock.DemoTime(s.cfg.Location).Format("15:04:05"),
	}
	for _, f := range files {
		result.Files = append(result.Files, output.ExportFile{Path: f.Path, Size: f.Size, Scaled: f.Scaled})
	}
	return yamlResult(result), nil
}

func (s *Server) handleRendererStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.renderMu.Lock()
	stats := s.renderer.Stats()
	s.renderMu.Unlock()
	return yamlResult(stats), nil
}
