package sym

import (
	"testing"
	"unicode/utf8"
)

func TestSymbolToCommandAndCommandToSymbolAreBidirectional(t *testing.T) {
	for symbol, cmd := range SymbolToCommand {
		got, ok := CommandToSymbol[cmd]
		if !ok {
			t.Errorf("SymbolToCommand has %q → %q, but CommandToSymbol has no entry for %q", symbol, cmd, cmd)
			continue
		}
		if got != symbol {
			t.Errorf("bidirectional mismatch: SymbolToCommand[%q] = %q, but CommandToSymbol[%q] = %q", symbol, cmd, cmd, got)
		}
	}

	for cmd, symbol := range CommandToSymbol {
		got, ok := SymbolToCommand[symbol]
		if !ok {
			t.Errorf("CommandToSymbol has %q → %q, but SymbolToCommand has no entry for %q", cmd, symbol, symbol)
			continue
		}
		if got != cmd {
			t.Errorf("bidirectional mismatch: CommandToSymbol[%q] = %q, but SymbolToCommand[%q] = %q", cmd, symbol, symbol, got)
		}
	}
}

func TestGlyphsAreValidUTF8(t *testing.T) {
	for _, glyph := range []string{Gen, Factor, Viz, Sum, Product, Power, Vowel, Server} {
		if !utf8.ValidString(glyph) {
			t.Errorf("glyph %q is not valid UTF-8", glyph)
		}
		if glyph == "" {
			t.Error("empty glyph")
		}
	}
}

func TestOpSymbol(t *testing.T) {
	if OpSymbol("sum") != Sum || OpSymbol("product") != Product || OpSymbol("power") != Power {
		t.Error("known operations must map to their glyphs")
	}
	if OpSymbol("modulo") != "modulo" {
		t.Errorf("unknown operation should pass through, got %q", OpSymbol("modulo"))
	}
}
