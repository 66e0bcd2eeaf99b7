// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultLogDir      = "logs"
	defaultLogFilename = "consensuscheck.log"
)

// config mirrors the teacher's params struct embedding defaults,
// overridden by flag parsing — see chaincfg.Params / the exccd config.go
// pattern.
type config struct {
	FixturesDir string `short:"f" long:"fixturesdir" description:"directory of JSON fixture files to run"`
	LogDir      string `long:"logdir" description:"directory to write rotated log files to"`
	StatusAddr  string `long:"statusaddr" description:"address to serve the live status websocket on (empty disables it)"`
	CacheDir    string `long:"cachedir" description:"goleveldb directory for the fixture result cache (empty disables it)"`
	Net         string `long:"net" description:"network parameter set name: mainnet or regtest; the fixture checks this command runs do not read it" default:"regtest"`
	Debug       string `long:"debuglevel" description:"logging level: trace, debug, info, warn, error, critical" default:"info"`
}

func defaultConfig() config {
	return config{
		LogDir: defaultLogDir,
		Net:    "regtest",
		Debug:  "info",
	}
}

func loadConfig() (*config, error) {
	cfg := defaultConfig()
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}
	if cfg.FixturesDir == "" {
		return nil, fmt.Errorf("-f/--fixturesdir is required")
	}
	cfg.LogDir = filepath.Clean(cfg.LogDir)
	return &cfg, nil
}
