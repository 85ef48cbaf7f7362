// Package driver formats changelog files on disk. It resolves the paths
// given on the command line, runs the parser and renderer on each file in
// parallel, and reports per-file results.
package driver
