// Package loam reads graphs from a Loam document repository: Markdown files
// whose frontmatter carries the graph, versioned alongside prose notes.
package loam
