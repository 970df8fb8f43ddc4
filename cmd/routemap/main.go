// Routemap is a map editor: place sprites, connect them with flight routes and
// watch a plane fly them.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/phanxgames/routemap"
	"github.com/phanxgames/routemap/ebitenmap"
)

func main() {
	flag.Parse()
	if *logFileFlag != "" {
		setupLogger(&lumberjack.Logger{
			Filename:   *logFileFlag,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		}, levelFlag.value)
	} else {
		slog.SetLogLoggerLevel(levelFlag.value)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatal(err)
	}

	ed, assets := newEditor(cfg, os.DirFS(*assetsFlag))
	ed.SetDebugMode(*debugFlag)

	if err := assets.Preload(context.Background(), cfg.Preload...); err != nil {
		slog.Warn("preload images", "error", err)
	}
	if *mapFlag != "" {
		if err := loadMap(ed, *mapFlag); err != nil {
			log.Fatal(err)
		}
	}
	if *scriptFlag != "" {
		data, err := os.ReadFile(*scriptFlag)
		if err != nil {
			log.Fatal(err)
		}
		runner, err := routemap.LoadTestScript(data)
		if err != nil {
			log.Fatal(err)
		}
		ed.SetTestRunner(runner)
	}

	if err := ebitenmap.Run(ed, cfg.Window); err != nil {
		log.Fatal(err)
	}

	if *saveFlag != "" {
		if err := os.WriteFile(*saveFlag, []byte(ed.Save()), 0o644); err != nil {
			log.Fatal(err)
		}
		slog.Info("map saved", "file", *saveFlag)
	}
}

// setupLogger routes both slog and the standard logger to w.
func setupLogger(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func newEditor(cfg appConfig, fsys fs.FS) (*routemap.Editor, *ebitenmap.Assets) {
	ed := routemap.NewEditor(cfg.Editor)
	assets := ebitenmap.NewAssets(fsys)
	ed.SetImageSource(assets)
	return ed, assets
}

// loadMap loads the document at path into ed. Only an unreadable file is an
// error; a malformed document is logged and the editor starts empty.
func loadMap(ed *routemap.Editor, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	if err := ed.Load(string(data)); err != nil {
		slog.Warn("starting with an empty map", "file", path, "error", err)
	}
	return nil
}
