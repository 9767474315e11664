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
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logLevels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"none":  zapcore.FatalLevel + 1,
}

func normaliseWriters(writers ...zapcore.WriteSyncer) zapcore.WriteSyncer {
	if len(writers) == 1 {
		return writers[0]
	}
	return zapcore.NewMultiWriteSyncer(writers...)
}

func encoderConfig(encodeLevel zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		NameKey:        "logger",
		TimeKey:        "ts",
		EncodeLevel:    encodeLevel,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// NewJSONLogger creates a `zap.SugaredLogger` configured for JSON output to `writers`
func NewJSONLogger(level zapcore.LevelEnabler, writers ...zapcore.WriteSyncer) *zap.SugaredLogger {
	encoder := zapcore.NewJSONEncoder(encoderConfig(zapcore.LowercaseLevelEncoder))
	core := zapcore.NewCore(encoder, normaliseWriters(writers...), level)
	return zap.New(core).Sugar().Named("dicom")
}

// NewConsoleLogger creates a `zap.SugaredLogger` configured for human-readable output to `writers`
func NewConsoleLogger(level zapcore.LevelEnabler, writers ...zapcore.WriteSyncer) *zap.SugaredLogger {
	encoder := zapcore.NewConsoleEncoder(encoderConfig(zapcore.CapitalLevelEncoder))
	core := zapcore.NewCore(encoder, normaliseWriters(writers...), level)
	return zap.New(core).Sugar().Named("dicom")
}

// NewLogger creates the logger described by cfg, writing to stderr
func NewLogger(cfg Config) *zap.SugaredLogger {
	level, ok := logLevels[cfg.LogLevel]
	if !ok {
		level = zapcore.InfoLevel
	}
	if cfg.LogFormat == "json" {
		return NewJSONLogger(level, zapcore.Lock(os.Stderr))
	}
	return NewConsoleLogger(level, zapcore.Lock(os.Stderr))
}

var (
	loggerMu      sync.Mutex
	defaultLogger *zap.SugaredLogger
)

// packageLogger returns the logger used when no WithLogger option is given
func packageLogger() *zap.SugaredLogger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger(GetConfig())
	}
	return defaultLogger
}

func resetDefaultLogger() {
	loggerMu.Lock()
	defaultLogger = nil
	loggerMu.Unlock()
}
