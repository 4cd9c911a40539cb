package main

// Command-line defaults
const (
	defaultFormat   = "wav"
	minRequiredArgs = 1
)

// Progress reporting
const (
	progressBytes = 16 // print one dot per this many input bytes
)
