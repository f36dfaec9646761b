package openapi

import (
	"github.com/goliatone/go-fieldschema/pkg/coreschema"
)

// Location says where a link field travels in the request.
type Location string

const (
	LocationPath   Location = "path"
	LocationQuery  Location = "query"
	LocationHeader Location = "header"
	LocationCookie Location = "cookie"
	// LocationForm fields are merged into a single request body object.
	LocationForm Location = "form"
	// LocationBody is a field holding the whole request body.
	LocationBody Location = "body"
)

// Media types with special handling in request bodies.
const (
	EncodingJSON        = "application/json"
	EncodingMultipart   = "multipart/form-data"
	EncodingURLEncoded  = "application/x-www-form-urlencoded"
	EncodingOctetStream = "application/octet-stream"
)

// Document describes an API as a flat list of links.
type Document struct {
	Title       string
	Description string
	Version     string
	// URL is the API root. Its scheme and host become the server entry.
	URL   string
	Links []Link
}

// Link is a single API operation.
type Link struct {
	// ID becomes the operationId; defaults to "<action>:<url>".
	ID          string
	URL         string
	Action      string
	Encoding    string
	Description string
	Tags        []string
	Fields      []LinkField
	// Response is the schema of a successful response; nil means no body.
	Response coreschema.Node
	// Errors maps additional status codes to their description.
	Errors map[int]string
}

// LinkField is one input of a link.
type LinkField struct {
	Name        string
	Location    Location
	Required    bool
	Description string
	Schema      coreschema.Node
}
