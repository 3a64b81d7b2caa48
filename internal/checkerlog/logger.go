/*
 * Copyright 2026 The Inlt Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package checkerlog provides the pluggable logging interface used
// throughout the checker, the same shape as a Config's Logger field:
// callers can swap in their own structured logger without the checker
// itself depending on one.
package checkerlog

import (
	"log"
	"os"
)

// Logger is the logging interface the checker writes diagnostics
// through. A custom implementation can route these into any structured
// logging pipeline.
type Logger interface {
	Printf(format string, v ...interface{})
}

type stdLogger struct {
	l *log.Logger
}

// DefaultLogger returns the logger used when a Config doesn't set one:
// plain stderr output, prefixed so checker output can be told apart
// from a wrapping tool's own logging.
func DefaultLogger() Logger {
	return &stdLogger{l: log.New(os.Stderr, "inlt: ", log.LstdFlags)}
}

func (s *stdLogger) Printf(format string, v ...interface{}) {
	s.l.Printf(format, v...)
}

// Discard silences all output, for embedding contexts that want the
// checker's result value but none of its logging.
func Discard() Logger {
	return discardLogger{}
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}
