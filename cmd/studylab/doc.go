// Package main hosts the studylab CLI entrypoint and command graph.
//
// The Cobra command tree exposes the HTTP server and every study tool from
// the terminal. Configuration resolution, provider selection, and logger
// setup live in the shared command context so subcommands only collect
// flags and format results.
package main
