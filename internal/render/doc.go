// Package render executes the composition plan through a tiered fallback
// chain: animated composition → simple composition when images are
// present, animated background → static background when none are, and a
// placeholder tier reached only when the encoder binary is absent. Each
// tier is an independent strategy tried in strictly descending
// sophistication.
package render
