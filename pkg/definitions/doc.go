// Package definitions exposes the contracts for loading declarative
// serializer catalogs (YAML or JSON) and parsing them into field descriptors.
// Implementations live under internal/definitions; construction helpers live
// in the top-level fieldschema package to avoid import cycles.
//
// A minimal document:
//
//	title: Snippets API
//	version: "1.0"
//	serializers:
//	  Snippet:
//	    fields:
//	      - {name: title, type: char, max_length: 100, required: true}
//	      - {name: code, type: char, style: {base_template: textarea.html}}
//	endpoints:
//	  - {path: /snippets/, method: get, response: Snippet, many: true}
package definitions
