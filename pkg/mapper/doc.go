// Package mapper turns serializer field descriptors (package fields) into
// coreschema nodes for API documentation.
//
// Resolution follows a fixed priority: a pre-built schema on the field wins,
// then container kinds (lists, nested serializers), relations, choices,
// booleans, numbers, identifiers, pattern-constrained and URL text, JSON, and
// finally a generic string. Missing optional attributes degrade to absent
// constraints; documentation generation never stops because one field lacks
// metadata. Only contract violations (nil descriptors, missing container
// children, self-referencing structures) are reported as errors.
package mapper
