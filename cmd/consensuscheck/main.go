// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command consensuscheck runs a directory of JSON fixture files through
// the consensus core's commit-reveal and verification path and reports
// pass/fail — a conformance runner, not a node. It consumes the core only
// through its exported contracts, the way any external collaborator
// named in spec §6 would.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"coinjecture.dev/consensus/chainhash"
	"coinjecture.dev/consensus/harness"
	"coinjecture.dev/consensus/problem"
)

// fixtureFile is the on-disk JSON shape of one conformance fixture.
type fixtureFile struct {
	Name      string            `json:"name"`
	Problem   *problem.Problem  `json:"problem"`
	Solution  *problem.Solution `json:"solution"`
	EpochSalt string            `json:"epoch_salt"`
	Want      bool              `json:"want"`
}

func loadFixtures(dir string) ([]harness.Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []harness.Fixture
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var ff fixtureFile
		if err := json.Unmarshal(raw, &ff); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		salt, err := chainhash.NewHashFromStr(ff.EpochSalt)
		if err != nil {
			return nil, fmt.Errorf("%s: bad epoch_salt: %w", path, err)
		}
		out = append(out, harness.Fixture{
			Name:      ff.Name,
			Problem:   ff.Problem,
			Solution:  ff.Solution,
			EpochSalt: salt,
			Budget:    problem.DefaultVerifyBudget,
			Want:      ff.Want,
		})
	}
	return out, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := initLogRotator(cfg.LogDir, defaultLogFilename); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init log rotator: %v\n", err)
		os.Exit(1)
	}
	setLogLevel(cfg.Debug)

	fixtures, err := loadFixtures(cfg.FixturesDir)
	if err != nil {
		log.Errorf("loading fixtures: %v", err)
		os.Exit(1)
	}
	log.Infof("loaded %d fixtures from %s", len(fixtures), cfg.FixturesDir)

	var cache *harness.FixtureCache
	if cfg.CacheDir != "" {
		cache, err = harness.OpenFixtureCache(cfg.CacheDir)
		if err != nil {
			log.Errorf("opening fixture cache: %v", err)
			os.Exit(1)
		}
		defer cache.Close()
	}

	var status *harness.StatusServer
	if cfg.StatusAddr != "" {
		status = harness.NewStatusServer()
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/status", status)
			if err := http.ListenAndServe(cfg.StatusAddr, mux); err != nil {
				log.Warnf("status server stopped: %v", err)
			}
		}()
	}

	results := make([]harness.Result, 0, len(fixtures))
	runPassed, runFailed := 0, 0
	for _, f := range fixtures {
		r := harness.Run([]harness.Fixture{f}, cache)[0]
		results = append(results, r)
		if status == nil {
			continue
		}
		if r.Passed {
			runPassed++
		} else {
			runFailed++
		}
		status.Broadcast(harness.StatusUpdate{
			Passed: runPassed, Failed: runFailed, Total: len(fixtures), Current: r.Name,
		})
	}

	passed, failed := harness.Summarize(results)
	if failed > 0 {
		os.Exit(1)
	}
	log.Infof("all %d fixtures passed", passed)
}
