// Package cli implements the commands of the animflow binary on top of the
// public packages, so cmd/animflow only deals with flags.
package cli
