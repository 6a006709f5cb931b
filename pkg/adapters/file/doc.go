// Package file serves graph documents from a directory.
//
// Documents may be YAML (.yaml, .yml), JSON or TOML. The loader re-reads the
// file on every GetGraph, so together with Watch it supports hot reload while
// authoring.
package file
