// Package openapi converts coreschema nodes into kin-openapi schemas and
// assembles API descriptions (documents made of links) into OpenAPI 3
// documents. kin-openapi types appear in the public API on purpose: callers
// usually hand the result to other kin-openapi tooling.
package openapi
