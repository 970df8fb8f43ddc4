package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
)

type logLevelFlag struct {
	value slog.Level
}

func (l *logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level")
	}
	l.value = v
	return nil
}

// defined flags
var (
	levelFlag   logLevelFlag
	debugFlag   = flag.Bool("debug", false, "Log per-frame editor statistics")
	logFileFlag = flag.String("logfile", "", "Write logs to this file instead of the console")
	configFlag  = flag.String("config", "", "YAML configuration file")
	assetsFlag  = flag.String("assets", ".", "Directory holding the map images")
	mapFlag     = flag.String("map", "", "Map document to load at start")
	saveFlag    = flag.String("save", "", "Write the map document to this file on exit")
	scriptFlag  = flag.String("script", "", "JSON script of editor actions to run")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
}
