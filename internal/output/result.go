package output

import (
	"math"
	"time"

	"github.com/mj1618/clockface/internal/clock"
)

// Angles holds one hand's angle in both units. Radians follow the
// renderer's convention: 0 at 3 o'clock, counter-clockwise positive.
type Angles struct {
	Radians float64 `yaml:"radians" json:"radians"`
	Degrees float64 `yaml:"degrees" json:"degrees"`
}

// AnglesResult is the output of the `angles` command.
type AnglesResult struct {
	Time         string  `yaml:"time"          json:"time"`
	Timezone     string  `yaml:"timezone"      json:"timezone"`
	TotalSeconds float64 `yaml:"total_seconds" json:"total_seconds"`
	Hour         Angles  `yaml:"hour"          json:"hour"`
	Minute       Angles  `yaml:"minute"        json:"minute"`
	Second       Angles  `yaml:"second"        json:"second"`
}

// NewAnglesResult samples t and reports the canonical angles.
func NewAnglesResult(t time.Time) AnglesResult {
	ts := clock.Sample(t).Canonical()
	return AnglesResult{
		Time:         t.Format("15:04:05.000"),
		Timezone:     t.Location().String(),
		TotalSeconds: round(clock.SecondsOfDay(t), 3),
		Hour:         newAngles(ts.Hour),
		Minute:       newAngles(ts.Minute),
		Second:       newAngles(ts.Second),
	}
}

func newAngles(rad float64) Angles {
	return Angles{Radians: round(rad, 6), Degrees: round(rad*180/math.Pi, 3)}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// RenderResult describes a rendered frame written to a file.
type RenderResult struct {
	Path        string `yaml:"path"                  json:"path"`
	Format      string `yaml:"format"                json:"format"`
	Width       int    `yaml:"width"                 json:"width"`
	Height      int    `yaml:"height"                json:"height"`
	Time        string `yaml:"time"                  json:"time"`
	Preview     bool   `yaml:"preview,omitempty"     json:"preview,omitempty"`
	Transparent bool   `yaml:"transparent,omitempty" json:"transparent,omitempty"`
	Bytes       int64  `yaml:"bytes,omitempty"       json:"bytes,omitempty"`
}

// ExportFile is one file of an ExportResult.
type ExportFile struct {
	Path   string `yaml:"path"             json:"path"`
	Size   int    `yaml:"size"             json:"size"`
	Scaled bool   `yaml:"scaled,omitempty" json:"scaled,omitempty"`
}

// ExportResult is the output of the `export` command.
type ExportResult struct {
	Dir    string       `yaml:"dir"    json:"dir"`
	Format string       `yaml:"format" json:"format"`
	Time   string       `yaml:"time"   json:"time"`
	Files  []ExportFile `yaml:"files"  json:"files"`
}

// AnimateResult is the output of the `animate` command.
type AnimateResult struct {
	Output        string `yaml:"output,omitempty" json:"output,omitempty"`
	Frames        int    `yaml:"frames"           json:"frames"`
	Skipped       int    `yaml:"skipped"          json:"skipped"`
	FPS           int    `yaml:"fps"              json:"fps"`
	Regenerations int    `yaml:"regenerations"    json:"regenerations"`
	CacheHits     int    `yaml:"cache_hits"       json:"cache_hits"`
}
