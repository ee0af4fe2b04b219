// Package jit is the generation engine: it parses the base style table and
// the metadata config, resolves color utilities and turns individual class
// tokens into CSS rules. Everything here is pure and safe to share across
// goroutines once parsed.
package jit
