// Package textutil provides small string helpers shared across the tracker:
// whitespace normalization for scraped titles, filesystem-safe token
// generation for show slugs, and display truncation for chart labels.
package textutil
