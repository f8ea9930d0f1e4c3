package logger

import (
	"github.com/teranos/PVX/sym"
	"go.uber.org/zap"
)

// Symbol-aware logging helpers.
// These functions log with the symbol as a structured field, not in the message.
//
// Usage:
//
//	// Instead of:
//	logger.Infow(sym.Gen + " Primes generated", "count", n)
//
//	// Use:
//	logger.GenInfow("Primes generated", "count", n)
//
// This makes logs queryable by symbol and keeps messages clean.

// GenInfow logs an info message with the Gen symbol (ℙ)
func GenInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Gen}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// GenDebugw logs a debug message with the Gen symbol (ℙ)
func GenDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Gen}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// FactorInfow logs an info message with the Factor symbol (∏)
func FactorInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Factor}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// VizInfow logs an info message with the Viz symbol (❖)
func VizInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Viz}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// WithSymbol returns a logger with the given symbol as a field.
// For ad-hoc symbol usage not covered by the helpers above.
func WithSymbol(symbol string) *zap.SugaredLogger {
	return Logger.With(FieldSymbol, symbol)
}

// AddServerSymbol wraps a logger with the Server symbol (⟁)
func AddServerSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.Server)
}

// AddVizSymbol wraps a logger with the Viz symbol (❖)
func AddVizSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.Viz)
}
