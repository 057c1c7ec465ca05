// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package ctxlog provides context-scoped logging for SDK and CLI
// code.
package ctxlog

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	loggerCtxKey = new(int)
	rootLogger   = New(os.Stderr, "text", "info")
)

const rfc3339NanoFixed = "2006-01-02T15:04:05.000000000Z07:00"

// Context returns a new child context such that FromContext(child)
// returns the given logger.
func Context(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// FromContext returns the logger suitable for the given context -- the
// one attached by Context() if applicable, otherwise the package-level
// root logger.
func FromContext(ctx context.Context) logrus.FieldLogger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey).(logrus.FieldLogger); ok {
			return logger
		}
	}
	return rootLogger.WithFields(nil)
}

// New returns a new logger with the given output, format ("json" or
// "text"), and level (e.g., "debug", "info", "warn").
func New(out io.Writer, format, level string) *logrus.Logger {
	logger := logrus.New()
	logger.Out = out
	setFormat(logger, format)
	setLevel(logger, level)
	return logger
}

// SetLevel changes the level of the package-level root logger.
func SetLevel(level string) {
	setLevel(rootLogger, level)
}

func setLevel(logger *logrus.Logger, level string) {
	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatal(err)
	}
	logger.Level = lvl
}

// SetFormat changes the format of the package-level root logger to
// "json" or "text".
func SetFormat(format string) {
	setFormat(rootLogger, format)
}

func setFormat(logger *logrus.Logger, format string) {
	switch format {
	case "text":
		logger.Formatter = &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: rfc3339NanoFixed,
		}
	case "json", "":
		logger.Formatter = &logrus.JSONFormatter{
			TimestampFormat: rfc3339NanoFixed,
		}
	default:
		logrus.WithField("LogFormat", format).Fatal("unknown log format")
	}
}

// LogWriter returns an io.Writer that sends each written line to the
// given log func.
func LogWriter(log func(...interface{})) io.Writer {
	return &logWriter{log}
}

type logWriter struct {
	logfunc func(...interface{})
}

func (lw *logWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte{'\n'}) {
		lw.logfunc(string(line))
	}
	return len(p), nil
}

type testLogT interface {
	Log(...interface{})
}

// TestLogger returns a logger that writes to the test's log, suitable
// for use in test suites.
func TestLogger(t testLogT) *logrus.Logger {
	logger := logrus.New()
	logger.Out = LogWriter(t.Log)
	logger.Formatter = &logrus.TextFormatter{DisableTimestamp: true, DisableLevelTruncation: true}
	logger.Level = logrus.DebugLevel
	return logger
}
