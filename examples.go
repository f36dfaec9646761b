package fieldschema

import (
	"embed"
	"io/fs"
	"strings"
)

//go:embed examples/*.yaml
var embeddedExamples embed.FS

// ExamplesFS exposes the bundled definitions documents so callers and the CLI
// can try the pipeline without writing their own catalog.
//
// Typical use:
//
//	loader := fieldschema.NewLoader(definitions.WithFileSystem(fieldschema.ExamplesFS()))
//	doc, err := loader.Load(ctx, definitions.SourceFromFS("snippets.yaml"))
func ExamplesFS() fs.FS {
	sub, err := fs.Sub(embeddedExamples, "examples")
	if err != nil {
		return embeddedExamples
	}
	return sub
}

// ExampleNames lists the bundled definitions documents without extension.
func ExampleNames() []string {
	entries, err := fs.ReadDir(ExamplesFS(), ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	return names
}
