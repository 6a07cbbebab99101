// Package logging defines the leveled logger used across leasedoc and its
// go-logger backed provider.
package logging

import (
	"context"
	"maps"
)

// Module names for scoped loggers.
const (
	RootModule      = "leasedoc"
	AssemblerModule = "leasedoc.assembler"
	TranslateModule = "leasedoc.translate"
	CLIModule       = "leasedoc.cli"
)

// Logger is the leveled logging contract. Args are alternating key/value
// pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithFields(fields map[string]any) Logger
	WithContext(ctx context.Context) Logger
}

// Provider hands out named loggers.
type Provider interface {
	GetLogger(name string) Logger
}

// ModuleLogger returns a logger scoped to module with a "module" field
// attached. A nil provider yields NoOp.
func ModuleLogger(provider Provider, module string) Logger {
	if module == "" {
		module = RootModule
	}
	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return logger.WithFields(map[string]any{"module": module})
}

// AssemblerLogger returns the logger reserved for document assembly.
func AssemblerLogger(provider Provider) Logger {
	return ModuleLogger(provider, AssemblerModule)
}

// TranslateLogger returns the logger reserved for translation calls.
func TranslateLogger(provider Provider) Logger {
	return ModuleLogger(provider, TranslateModule)
}

// CLILogger returns the logger reserved for the command line tool.
func CLILogger(provider Provider) Logger {
	return ModuleLogger(provider, CLIModule)
}

// NoOp returns a logger that drops every entry.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ Logger = noopLogger{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger   { return n }
func (n noopLogger) WithContext(context.Context) Logger { return n }

func cloneFields(fields map[string]any) map[string]any {
	return maps.Clone(fields)
}
