// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config represents the package configuration. It is read from the environment the first time
// it is needed and can be replaced with OverrideConfig.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error" or "none"
	LogLevel string

	// LogFormat is "console" or "json"
	LogFormat string

	// MirrorWarnings controls whether anomalies appended to a DataSet's warnings are also
	// written to the logger
	MirrorWarnings bool
}

var (
	configMu  sync.Mutex
	config    Config
	configSet bool
)

func strFromEnvDefault(key string, def string) string {
	val, found := os.LookupEnv(key)
	if !found {
		return def
	}
	return val
}

func boolFromEnvDefault(key string, def bool) bool {
	valStr, found := os.LookupEnv(key)
	if !found {
		return def
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return def
	}
	return val
}

func configFromEnv() Config {
	cfg := Config{
		LogLevel:       strings.ToLower(strFromEnvDefault("DICOMPARSER_LOGLEVEL", "info")),
		LogFormat:      strings.ToLower(strFromEnvDefault("DICOMPARSER_LOGFORMAT", "console")),
		MirrorWarnings: boolFromEnvDefault("DICOMPARSER_MIRRORWARNINGS", false),
	}
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat != "json" {
		cfg.LogFormat = "console"
	}
	return cfg
}

// GetConfig returns the package configuration, reading it from the environment if it was not
// already set:
//   DICOMPARSER_LOGLEVEL        debug, info (default), warn, error, none
//   DICOMPARSER_LOGFORMAT       console (default) or json
//   DICOMPARSER_MIRRORWARNINGS  true or false (default)
func GetConfig() Config {
	configMu.Lock()
	defer configMu.Unlock()
	if !configSet {
		config = configFromEnv()
		configSet = true
	}
	return config
}

// OverrideConfig replaces the configuration parsed from the environment. The package logger is
// rebuilt from the new configuration.
func OverrideConfig(newConfig Config) {
	configMu.Lock()
	config = newConfig
	configSet = true
	configMu.Unlock()

	resetDefaultLogger()
}
