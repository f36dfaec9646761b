// Package docgen wires the definitions loader and parser, the field mapper,
// and the OpenAPI encoder into a single pipeline. Callers start with New()
// and override individual stages through options.
package docgen
