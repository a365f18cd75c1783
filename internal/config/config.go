// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package config defines the settings of the jdocd server and loads them
// from TOML files.
//
// A configuration file looks like this:
//
//	addr = "localhost:8080"
//	log_level = "debug"
//
//	[[users]]
//	id = 1
//	name = "Alice"
//
//	[[products]]
//	id = 1
//	name = "Laptop"
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "localhost:8080"

// Config is the configuration of the server.
type Config struct {
	Addr     string  `toml:"addr"`
	LogLevel string  `toml:"log_level"`
	Users    []Entry `toml:"users"`
	Products []Entry `toml:"products"`
}

// An Entry is a record of demo data.
type Entry struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Addr:     DefaultAddr,
		LogLevel: "info",
		Users:    []Entry{{1, "Alice"}, {2, "Bob"}},
		Products: []Entry{{1, "Laptop"}, {2, "Phone"}},
	}
}

// Load reads the configuration file at path. Settings not present in the
// file keep their default values. If path is empty, Load returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration from TOML text. Each setting present in the
// text replaces the corresponding setting of Default() as a whole, so a list
// of entries in the file is not merged with the default list. Keys that do
// not correspond to any setting are reported as an error.
func Parse(data []byte) (Config, error) {
	var file Config
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return Config{}, err
	}
	if extra := md.Undecoded(); len(extra) != 0 {
		keys := make([]string, len(extra))
		for i, k := range extra {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg := Default()
	if md.IsDefined("addr") {
		cfg.Addr = file.Addr
	}
	if md.IsDefined("log_level") {
		cfg.LogLevel = file.LogLevel
	}
	if md.IsDefined("users") {
		cfg.Users = file.Users
	}
	if md.IsDefined("products") {
		cfg.Products = file.Products
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level returns the logging level named by c.LogLevel.
func (c Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.LogLevel)
}
