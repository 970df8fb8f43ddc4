package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/phanxgames/routemap"
	"github.com/phanxgames/routemap/ebitenmap"
)

// ignitionDelay is the number of frames a plane idles on the runway before
// taking off.
const ignitionDelay = 200

// appConfig is the complete configuration of the binary.
type appConfig struct {
	Editor  routemap.Config
	Window  ebitenmap.RunConfig
	Preload []string
}

func defaultAppConfig() appConfig {
	ed := routemap.DefaultConfig()
	ed.IgnitionDelay = ignitionDelay
	return appConfig{
		Editor:  ed,
		Window:  ebitenmap.RunConfig{Title: "routemap", Width: 1280, Height: 720},
		Preload: append([]string(nil), ed.PlaneSources...),
	}
}

// fileConfig is the YAML layout of the configuration file. Omitted fields
// keep their defaults.
type fileConfig struct {
	Window struct {
		Title  string `yaml:"title"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	} `yaml:"window"`
	Flight struct {
		Speed         float64 `yaml:"speed"`
		FrameRate     float64 `yaml:"frameRate"`
		IgnitionDelay *int    `yaml:"ignitionDelay"`
		Plane         *int    `yaml:"plane"`
	} `yaml:"flight"`
	Route struct {
		Length int      `yaml:"length"`
		Type   string   `yaml:"type"`
		Slope  *float64 `yaml:"slope"`
	} `yaml:"route"`
	PlaneSources []string `yaml:"planeSources"`
	Preload      []string `yaml:"preload"`
}

// parseConfig overlays the YAML document data onto base.
func parseConfig(data []byte, base appConfig) (appConfig, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return appConfig{}, fmt.Errorf("parse config: %w", err)
	}
	cfg := base

	if fc.Window.Title != "" {
		cfg.Window.Title = fc.Window.Title
	}
	if fc.Window.Width > 0 {
		cfg.Window.Width = fc.Window.Width
	}
	if fc.Window.Height > 0 {
		cfg.Window.Height = fc.Window.Height
	}

	if fc.Flight.Speed > 0 {
		cfg.Editor.FlightSpeed = fc.Flight.Speed
	}
	if fc.Flight.FrameRate > 0 {
		cfg.Editor.FrameRate = fc.Flight.FrameRate
	}
	if fc.Flight.IgnitionDelay != nil {
		if *fc.Flight.IgnitionDelay < 0 {
			return appConfig{}, fmt.Errorf("parse config: negative ignition delay %d", *fc.Flight.IgnitionDelay)
		}
		cfg.Editor.IgnitionDelay = *fc.Flight.IgnitionDelay
	}
	if fc.Flight.Plane != nil {
		cfg.Editor.PlaneID = routemap.EntityID(*fc.Flight.Plane)
	}

	if fc.Route.Length != 0 {
		if fc.Route.Length < 2 {
			return appConfig{}, fmt.Errorf("parse config: route length %d is less than 2", fc.Route.Length)
		}
		cfg.Editor.RouteLength = fc.Route.Length
	}
	if fc.Route.Type != "" {
		t, ok := routemap.ParseCurveType(fc.Route.Type)
		if !ok {
			return appConfig{}, fmt.Errorf("parse config: unknown route type %q", fc.Route.Type)
		}
		cfg.Editor.RouteType = t
	}
	if fc.Route.Slope != nil {
		cfg.Editor.RouteSlope = *fc.Route.Slope
	}

	if len(fc.PlaneSources) > 0 {
		cfg.Editor.PlaneSources = fc.PlaneSources
	}
	if len(fc.Preload) > 0 {
		cfg.Preload = fc.Preload
	}
	return cfg, nil
}

// loadConfig reads the configuration file at path. An empty path yields the
// defaults.
func loadConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return appConfig{}, fmt.Errorf("load config: %w", err)
	}
	return parseConfig(data, cfg)
}
