// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"

	"coinjecture.dev/consensus/harness"
)

var (
	backendLog = slog.NewBackend(logWriter{})
	log        = backendLog.Logger("CCHK")
	logRotator *rotator.Rotator
)

// logWriter implements io.Writer and plumbs every slog.Backend write
// through the active file rotator as well as stdout, matching the
// teacher's node binaries' logging setup.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

// initLogRotator opens a rotating log file under logDir, following the
// teacher's jrick/logrotate usage for its node binaries.
func initLogRotator(logDir, filename string) error {
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return err
	}
	r, err := rotator.New(filepath.Join(logDir, filename), 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

// setLogLevel parses a level string and applies it to every package
// logger this binary drives.
func setLogLevel(levelStr string) {
	level, ok := slog.LevelFromString(levelStr)
	if !ok {
		level = slog.LevelInfo
	}
	log.SetLevel(level)
	harnessLog := backendLog.Logger("HRNS")
	harnessLog.SetLevel(level)
	harness.SetLogger(harnessLog)
}
