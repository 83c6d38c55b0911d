// Package config loads the YAML configuration of the lifespan chart
// generator.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"lifespanchart/internal/blob"
	"lifespanchart/internal/chart"
	"lifespanchart/internal/interact"
	"lifespanchart/internal/record"
	"lifespanchart/internal/scale"
	"lifespanchart/internal/zoom"
)

// Output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
)

// chromeSize is the space the page leaves around the chart area in each
// direction, taken from the viewport before margins are added.
const chromeSize = 100

// Config represents the complete configuration for chart generation.
// This structure maps directly to YAML configuration files. Fields left out of
// a file keep their default values.
type Config struct {
	Viewport struct {
		Width  float64 `yaml:"width"`  // Browser viewport width the chart is sized for
		Height float64 `yaml:"height"` // Browser viewport height the chart is sized for
	} `yaml:"viewport"`
	Margin struct {
		Top    float64 `yaml:"top"`
		Right  float64 `yaml:"right"`
		Bottom float64 `yaml:"bottom"` // Room for the axis labels
		Left   float64 `yaml:"left"`
	} `yaml:"margin"`
	Scale struct {
		Domain         [2]float64 `yaml:"domain"`           // Value range mapped onto the chart width
		DomainFromData bool       `yaml:"domain_from_data"` // Derive [min(0, lowest start), highest end] from the records instead
		BandPadding    float64    `yaml:"band_padding"`     // Inner and outer padding of the name bands, as a fraction of the step
		Ticks          int        `yaml:"ticks"`            // Approximate number of axis ticks
	} `yaml:"scale"`
	Zoom struct {
		Min float64 `yaml:"min"` // Smallest zoom factor (1 is the unzoomed chart)
		Max float64 `yaml:"max"` // Largest zoom factor
	} `yaml:"zoom"`
	Colors struct {
		Background  string `yaml:"background"`
		Normal      string `yaml:"normal"`      // Bar fill for ordinary records
		Highlighted string `yaml:"highlighted"` // Bar fill for flagged records
		Selected    string `yaml:"selected"`    // Bar fill after a click
		Text        string `yaml:"text"`
		Guide       string `yaml:"guide"` // Pointer guide line stroke
	} `yaml:"colors"`
	Font struct {
		Family string  `yaml:"family"`
		Size   float64 `yaml:"size"` // Label and year text size in pixels
	} `yaml:"font"`
	Label struct {
		Offset     float64 `yaml:"offset"`      // Gap between a bar's end and its name
		YearOffset float64 `yaml:"year_offset"` // Vertical position of the pointer year (negative is above the chart)
		GuideDash  string  `yaml:"guide_dash"`  // stroke-dasharray of the guide line
	} `yaml:"label"`
	Tooltip struct {
		DX         float64 `yaml:"dx"` // Horizontal offset from the click
		DY         float64 `yaml:"dy"` // Vertical offset from the click
		Opacity    float64 `yaml:"opacity"`
		FadeMs     int     `yaml:"fade_ms"`
		StartLabel string  `yaml:"start_label"`
		EndLabel   string  `yaml:"end_label"`
	} `yaml:"tooltip"`
	Interaction struct {
		HoverPolicy string `yaml:"hover_policy"` // "first-match" or "topmost"
	} `yaml:"interaction"`
	Fields record.Fields `yaml:"fields"`
	Output struct {
		Format string `yaml:"format"` // "html" or "svg"
		Title  string `yaml:"title"`  // Page title of the HTML output
	} `yaml:"output"`
	S3 struct {
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"` // Custom endpoint, e.g. MinIO
		PathStyle bool   `yaml:"path_style"`
	} `yaml:"s3"`
}

// Default returns the configuration of the classic lifespan chart: a
// 1440×900 viewport, values 0 to 13500, blue and red bars.
func Default() Config {
	var c Config
	c.Viewport.Width = 1440
	c.Viewport.Height = 900

	c.Margin.Top = 20
	c.Margin.Right = 20
	c.Margin.Bottom = 30
	c.Margin.Left = 50

	c.Scale.Domain = [2]float64{0, 13500}
	c.Scale.BandPadding = scale.DefaultBandPadding
	c.Scale.Ticks = scale.DefaultTickCount

	c.Zoom.Min = 1
	c.Zoom.Max = 10

	style := chart.DefaultStyle()
	c.Colors.Background = style.Background
	c.Colors.Normal = style.Normal
	c.Colors.Highlighted = style.Highlighted
	c.Colors.Selected = style.Selected
	c.Colors.Text = style.Text
	c.Colors.Guide = style.Guide

	c.Font.Family = style.FontFamily
	c.Font.Size = style.FontSize

	c.Label.Offset = style.LabelOffset
	c.Label.YearOffset = style.YearOffset
	c.Label.GuideDash = style.GuideDash

	c.Tooltip.DX = 5
	c.Tooltip.DY = -28
	c.Tooltip.Opacity = 0.9
	c.Tooltip.FadeMs = style.TooltipFadeMs
	c.Tooltip.StartLabel = "Start"
	c.Tooltip.EndLabel = "End"

	c.Interaction.HoverPolicy = string(interact.FirstMatch)
	c.Fields = record.DefaultFields()
	c.Output.Format = FormatHTML
	c.Output.Title = "Lifespans"
	c.S3.Region = "us-east-1"
	return c
}

// Load reads configuration from a YAML file, or returns the defaults when no
// file is given. The file is decoded over the defaults and then validated.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	c.Output.Format, _ = ParseFormat(c.Output.Format)
	return c, nil
}

// Validate reports every setting that cannot produce a chart.
func (c Config) Validate() error {
	var errs []error
	if c.Viewport.Width <= chromeSize || c.Viewport.Height <= chromeSize {
		errs = append(errs, fmt.Errorf("viewport must be larger than %dx%d, got %gx%g",
			chromeSize, chromeSize, c.Viewport.Width, c.Viewport.Height))
	}
	if !c.Scale.DomainFromData && c.Scale.Domain[0] == c.Scale.Domain[1] {
		errs = append(errs, errors.New("scale.domain must not be empty"))
	}
	if c.Scale.BandPadding < 0 || c.Scale.BandPadding >= 1 {
		errs = append(errs, fmt.Errorf("scale.band_padding must be in [0, 1), got %g", c.Scale.BandPadding))
	}
	if c.Scale.Ticks < 1 {
		errs = append(errs, fmt.Errorf("scale.ticks must be positive, got %d", c.Scale.Ticks))
	}
	if c.Zoom.Min <= 0 || c.Zoom.Max < c.Zoom.Min {
		errs = append(errs, fmt.Errorf("zoom range [%g, %g] is invalid", c.Zoom.Min, c.Zoom.Max))
	}
	if c.Tooltip.Opacity < 0 || c.Tooltip.Opacity > 1 {
		errs = append(errs, fmt.Errorf("tooltip.opacity must be in [0, 1], got %g", c.Tooltip.Opacity))
	}
	if _, err := interact.ParseHoverPolicy(c.Interaction.HoverPolicy); err != nil {
		errs = append(errs, fmt.Errorf("interaction.hover_policy: %w", err))
	}
	if c.Fields.Name == "" || c.Fields.Start == "" || c.Fields.End == "" {
		errs = append(errs, errors.New("fields.name, fields.start and fields.end are required"))
	}
	if _, err := ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseFormat normalises an output format name.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatHTML, FormatSVG:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want %s or %s)", s, FormatHTML, FormatSVG)
}

// Layout is the chart area derived from the viewport, with the configured
// margins.
func (c Config) Layout() chart.Layout {
	return chart.Layout{
		Width:  c.Viewport.Width - chromeSize,
		Height: c.Viewport.Height - chromeSize,
		Margin: chart.Margin{
			Top:    c.Margin.Top,
			Right:  c.Margin.Right,
			Bottom: c.Margin.Bottom,
			Left:   c.Margin.Left,
		},
	}
}

// Style returns the presentation attributes used by the renderer.
func (c Config) Style() chart.Style {
	s := chart.DefaultStyle()
	s.Background = c.Colors.Background
	s.Normal = c.Colors.Normal
	s.Highlighted = c.Colors.Highlighted
	s.Selected = c.Colors.Selected
	s.Text = c.Colors.Text
	s.Guide = c.Colors.Guide
	s.GuideDash = c.Label.GuideDash
	s.FontFamily = c.Font.Family
	s.FontSize = c.Font.Size
	s.LabelOffset = c.Label.Offset
	s.YearOffset = c.Label.YearOffset
	s.TickCount = c.Scale.Ticks
	s.TooltipFadeMs = c.Tooltip.FadeMs
	return s
}

// Domain returns the value range of the horizontal scale for records.
func (c Config) Domain(records []record.Record) [2]float64 {
	if !c.Scale.DomainFromData || len(records) == 0 {
		return c.Scale.Domain
	}
	lo, hi := 0.0, records[0].Hi()
	for _, r := range records {
		if r.Lo() < lo {
			lo = r.Lo()
		}
		if r.Hi() > hi {
			hi = r.Hi()
		}
	}
	if lo == hi {
		hi = lo + 1
	}
	return [2]float64{lo, hi}
}

// InteractOptions returns the controller options for a chart area of the
// given layout. The hover policy must already have passed Validate.
func (c Config) InteractOptions(layout chart.Layout) interact.Options {
	hover, _ := interact.ParseHoverPolicy(c.Interaction.HoverPolicy)
	return interact.Options{
		Behavior:       zoom.NewBehavior(layout.Width, layout.Height, c.Zoom.Min, c.Zoom.Max),
		Hover:          hover,
		TooltipDX:      c.Tooltip.DX,
		TooltipDY:      c.Tooltip.DY,
		TooltipOpacity: c.Tooltip.Opacity,
		FadeMs:         c.Tooltip.FadeMs,
		StartLabel:     c.Tooltip.StartLabel,
		EndLabel:       c.Tooltip.EndLabel,
	}
}

// S3Config returns the blob store settings, with LIFESPAN_S3_* environment
// variables taking precedence over the file.
func (c Config) S3Config() blob.S3Config {
	return blob.S3ConfigFromEnv(blob.S3Config{
		Region:    c.S3.Region,
		Endpoint:  c.S3.Endpoint,
		PathStyle: c.S3.PathStyle,
	})
}
