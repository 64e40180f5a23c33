// Package site turns a content directory and a template directory into a
// directory of rendered output files.
//
// A Generator runs an explicit, ordered list of tasks. File renders one tree
// with literal contexts into a single output file; ContentFolder renders one
// tree per content file of a folder, each bound to that file. Tasks are
// idempotent: a rerun overwrites what a previous run wrote.
package site
