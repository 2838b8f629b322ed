// Package data embeds the default lexicon and orthographic rule table.
package data

import _ "embed"

// Lexicon is the default root lexicon in the trmorph-lexicon v1 format.
//
//go:embed lexicon.txt
var Lexicon []byte

// Orthography is the default orthographic rule table (YAML).
//
//go:embed orthography.yaml
var Orthography []byte
