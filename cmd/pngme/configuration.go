// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"

	"github.com/dtn7/pngme-go/pkg/png"
)

// configEnv names the environment variable which may point to a configuration file.
const configEnv = "PNGME_CONFIG"

// tomlConfig describes the TOML-configuration.
type tomlConfig struct {
	Logging logConf
	Encode  encodeConf
	Watch   watchConf
}

// logConf describes the Logging-configuration block.
type logConf struct {
	Level        string
	ReportCaller bool `toml:"report-caller"`
	Format       string
}

// encodeConf describes the Encode-configuration block, shared by encode and decode.
type encodeConf struct {
	Key       string
	ChunkType string `toml:"chunk-type"`
	FileMode  string `toml:"file-mode"`
}

// watchConf describes the Watch-configuration block.
type watchConf struct {
	Retries int
}

// defaultConfig is used for each value missing in the configuration file.
func defaultConfig() tomlConfig {
	return tomlConfig{
		Logging: logConf{Level: "info", Format: "text"},
		Encode:  encodeConf{ChunkType: "ruSt", FileMode: "0644"},
		Watch:   watchConf{Retries: 5},
	}
}

// loadConfig reads the TOML configuration from filename. An empty filename
// falls back to the PNGME_CONFIG environment variable and then to the defaults.
func loadConfig(filename string) (conf tomlConfig, err error) {
	conf = defaultConfig()

	if filename == "" {
		filename = os.Getenv(configEnv)
	}
	if filename == "" {
		return
	}

	if _, err = toml.DecodeFile(filename, &conf); err != nil {
		err = fmt.Errorf("parsing configuration %s: %w", filename, err)
		return
	}

	if _, ctErr := png.ParseChunkType(conf.Encode.ChunkType); ctErr != nil {
		err = fmt.Errorf("encode.chunk-type: %w", ctErr)
		return
	}

	if _, modeErr := conf.Encode.fileMode(); modeErr != nil {
		err = fmt.Errorf("encode.file-mode: %w", modeErr)
		return
	}

	if conf.Watch.Retries < 1 {
		err = fmt.Errorf("watch.retries must be positive, got %d", conf.Watch.Retries)
		return
	}

	return
}

// fileMode returns the octal file-mode for newly created files.
func (ec encodeConf) fileMode() (os.FileMode, error) {
	mode, err := strconv.ParseUint(ec.FileMode, 8, 32)
	if err != nil {
		return 0, err
	}
	return os.FileMode(mode) & os.ModePerm, nil
}

// configureLogging sets up logrus based on the Logging-configuration block.
func configureLogging(conf logConf) {
	if conf.Level != "" {
		if lvl, err := log.ParseLevel(conf.Level); err != nil {
			log.WithFields(log.Fields{
				"level":    conf.Level,
				"error":    err,
				"provided": "panic,fatal,error,warn,info,debug,trace",
			}).Warn("Failed to set log level. Please select one of the provided ones")
		} else {
			log.SetLevel(lvl)
		}
	}

	log.SetReportCaller(conf.ReportCaller)

	switch conf.Format {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})

	case "json":
		log.SetFormatter(&log.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})

	default:
		log.WithField("format", conf.Format).Warn("Unknown logging format")
	}
}
