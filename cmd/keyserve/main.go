// Copyright 2025 The keyserve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the keyserve completion server or its debugging CLI.

keyserve loads word lists into a trie and answers ambiguous input: in
keypad mode "4663" finds home, good, gone and hood, ranked by frequency.
In exact mode input is matched letter by letter.

# Usage

Start the msgpack server on stdin/stdout:

	keyserve

Use a custom data directory and enable debug logs:

	keyserve -data /path/to/words -d

Try completions interactively:

	keyserve -c -mode exact -limit 10

The data directory holds binary chunks named dict_0001.bin, dict_0002.bin,
... and/or text files with one "word [frequency]" per line.

# Configuration

Settings live in keyserve.toml in the user config directory. The file is
created with defaults when missing; see package config for its layout.
Flags override the file.

# Command Line Flags

	-config string
	    Config file to use instead of the default location
	-data string
	    Directory containing dictionary files (default from config)
	-mode string
	    exact or keypad (default from config)
	-c  Run the CLI instead of the server
	-d  Enable debug logging
	-limit int
	    Number of suggestions to show in the CLI (default from config)
	-version
	    Show version information
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/keyserve/internal/cli"
	"github.com/bastiangx/keyserve/internal/logger"
	"github.com/bastiangx/keyserve/internal/utils"
	"github.com/bastiangx/keyserve/pkg/config"
	"github.com/bastiangx/keyserve/pkg/dictionary"
	"github.com/bastiangx/keyserve/pkg/server"
	"github.com/bastiangx/keyserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version    = "0.1.0"
	AppName    = "keyserve"
	configFile = "keyserve.toml"
	gh         = "https://github.com/bastiangx/keyserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary and completer together and hands over to
// the server or the CLI.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a custom config file")
	dataDir := flag.String("data", "", "Directory containing the dictionary files")
	mode := flag.String("mode", "", "Input mode: exact or keypad")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, "Number of suggestions to return in the CLI")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.SetupDefault(*debugMode)

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	log.Debugf("Config dir: %s", pathResolver.ConfigDir())
	cfg, usedPath := config.LoadConfigWithPriority(*configPath, pathResolver.GetConfigPath(configFile))
	log.Debugf("Using config: (%s)", usedPath)
	if *mode != "" {
		cfg.Trie.Mode = *mode
	}
	if *dataDir != "" {
		cfg.Dict.Dir = *dataDir
	}
	if *limit > 0 {
		cfg.CLI.DefaultLimit = *limit
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Bad settings: %v", err)
	}

	completerMode, err := suggest.ParseMode(cfg.Trie.Mode)
	if err != nil {
		log.Fatalf("Bad mode: %v", err)
	}
	completer, err := suggest.NewCompleter(completerMode,
		suggest.WithKeypadLayout(cfg.KeypadLayout()),
		suggest.WithHotCache(cfg.Cache.MaxEntries))
	if err != nil {
		log.Fatalf("Failed to create completer: %v", err)
	}

	resolvedDataDir := pathResolver.GetDataDir(cfg.Dict.Dir)
	log.Debugf("Using data dir at: %s", resolvedDataDir)
	stats, err := dictionary.NewLoader(resolvedDataDir, cfg.Dict.MaxWords, cfg.Dict.DefaultFrequency).LoadInto(completer)
	if err != nil {
		log.Warnf("Running with a partial or empty dictionary: %v", err)
	}
	log.Debug("Dictionary loaded",
		"files", stats.Files,
		"words", utils.FormatWithCommas(stats.LoadedWords),
		"skipped", stats.SkippedWords)

	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(completer, cfg.Server.MinPrefix, cfg.Server.MaxPrefix, cfg.CLI.DefaultLimit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	showStartupInfo(resolvedDataDir, completerMode, stats)
	srv := server.NewServer(completer, cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printVersion() {
	vlog := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	vlog.SetStyles(styles)

	vlog.Print("")
	vlog.Print("[ keyserve ] ambiguous keypad and prefix completion")
	vlog.Print("", "version", Version)
	vlog.Print("")
	vlog.Print("use -h or --help to see available options")
	vlog.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic info to stderr; stdout belongs to IPC.
func showStartupInfo(dataDir string, mode suggest.Mode, stats dictionary.LoaderStats) {
	l := logger.New(AppName)
	l.SetLevel(log.InfoLevel)
	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("mode: %s", mode)
	l.Infof("data dir: ( %s )", utils.GetAbsolutePath(dataDir))
	l.Infof("words: %s", utils.FormatWithCommas(stats.LoadedWords))
	l.Info("status: ready")
}
