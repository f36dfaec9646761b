package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/goliatone/go-fieldschema"
	"github.com/goliatone/go-fieldschema/pkg/definitions"
	"github.com/goliatone/go-fieldschema/pkg/docgen"
	"github.com/goliatone/go-fieldschema/pkg/mapper"
	"github.com/goliatone/go-fieldschema/pkg/openapi"
	"github.com/goliatone/go-fieldschema/pkg/validation"
)

const defaultTimeout = 10 * time.Second

// app holds the flags shared by every command.
type app struct {
	out      io.Writer
	prompter Prompter
	logger   *log.Logger

	source    string
	example   string
	lang      string
	stripHTML bool
	verbose   bool
	timeout   time.Duration
}

func newRootCommand(out io.Writer, prompter Prompter) *cobra.Command {
	a := &app{out: out, prompter: prompter, logger: log.New(io.Discard, "", 0)}

	root := &cobra.Command{
		Use:           "fieldschema",
		Short:         "Describe serializer definitions as JSON schema and OpenAPI documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				a.logger = log.New(cmd.ErrOrStderr(), "fieldschema: ", 0)
			}
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.source, "source", "s", "", "definitions file path or http(s) URL")
	flags.StringVar(&a.example, "example", "", "bundled definitions to use instead of --source ("+strings.Join(fieldschema.ExampleNames(), ", ")+")")
	flags.StringVar(&a.lang, "lang", "", "language tag used to translate labels and help texts")
	flags.BoolVar(&a.stripHTML, "strip-html", false, "remove HTML markup from titles and descriptions")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log progress to stderr")
	flags.DurationVar(&a.timeout, "timeout", defaultTimeout, "timeout for remote definitions")

	root.AddCommand(a.newSchemaCmd(), a.newOpenAPICmd(), a.newListCmd(), a.newLintCmd())
	return root
}

func (a *app) newSchemaCmd() *cobra.Command {
	var (
		serializer  string
		interactive bool
		format      string
		output      string
	)
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the schema of one serializer",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openapi.ParseFormat(format)
			if err != nil {
				return err
			}
			gen, req, err := a.request()
			if err != nil {
				return err
			}

			if serializer == "" || interactive {
				cat, err := gen.Catalog(cmd.Context(), req)
				if err != nil {
					return err
				}
				names := cat.Names()
				if !interactive {
					return fmt.Errorf("--serializer is required (one of: %s)", strings.Join(names, ", "))
				}
				serializer, err = a.pick(cmd, names, serializer)
				if err != nil {
					return err
				}
			}
			req.Serializer = serializer

			node, err := gen.Schema(cmd.Context(), req)
			if err != nil {
				return err
			}
			payload, err := openapi.Marshal(openapi.SchemaFromNode(node), f)
			if err != nil {
				return err
			}
			return a.write(output, payload)
		},
	}
	cmd.Flags().StringVar(&serializer, "serializer", "", "serializer name")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the serializer from a list")
	cmd.Flags().StringVarP(&format, "format", "f", string(openapi.FormatJSON), "output format (json|yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func (a *app) newOpenAPICmd() *cobra.Command {
	var (
		format   string
		output   string
		validate bool
	)
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document describing the declared endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openapi.ParseFormat(format)
			if err != nil {
				return err
			}
			gen, req, err := a.request(docgen.WithEncoder(openapi.NewEncoder(openapi.WithValidation(validate))))
			if err != nil {
				return err
			}
			payload, err := gen.Generate(cmd.Context(), req, f)
			if err != nil {
				return err
			}
			return a.write(output, payload)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(openapi.FormatYAML), "output format (json|yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the generated document")
	return cmd
}

func (a *app) newListCmd() *cobra.Command {
	var endpoints bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the declared serializers",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, req, err := a.request()
			if err != nil {
				return err
			}
			cat, err := gen.Catalog(cmd.Context(), req)
			if err != nil {
				return err
			}
			if endpoints {
				for _, ep := range cat.Endpoints {
					fmt.Fprintf(a.out, "%-7s %s\t%s\n", ep.Method, ep.Path, ep.ID)
				}
				return nil
			}
			for _, name := range cat.Names() {
				fmt.Fprintln(a.out, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&endpoints, "endpoints", false, "list endpoints instead of serializers")
	return cmd
}

func (a *app) newLintCmd() *cobra.Command {
	var allowRecursive bool
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check definitions documents for problems",
		Long:  "Check definitions files for parse errors, unmappable serializers and missing translations. Without paths the --source or --example document is checked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := a.lintDocuments(cmd, args)
			if err != nil {
				return err
			}

			var issues int
			for _, doc := range docs {
				result := validation.ValidateDefinitions(cmd.Context(), doc.Source(), doc.Raw(), validation.Options{AllowRecursive: allowRecursive})
				for _, issue := range result.Issues {
					location := issue.Field
					if location == "" {
						location = "document"
					}
					fmt.Fprintf(a.out, "%s: %s -> %s\n", doc.Location(), location, issue.Message)
				}
				issues += len(result.Issues)
				a.logger.Printf("linted %s: %d issue(s)", doc.Location(), len(result.Issues))
			}
			if issues > 0 {
				return fmt.Errorf("%d issue(s) found", issues)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&allowRecursive, "allow-recursive", false, "accept self-referencing serializers")
	return cmd
}

func (a *app) lintDocuments(cmd *cobra.Command, paths []string) ([]definitions.Document, error) {
	if len(paths) == 0 {
		src, loader, err := a.resolveSource()
		if err != nil {
			return nil, err
		}
		doc, err := loader.Load(cmd.Context(), src)
		if err != nil {
			return nil, err
		}
		return []definitions.Document{doc}, nil
	}

	loader := fieldschema.NewLoader()
	docs := make([]definitions.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := loader.Load(cmd.Context(), definitions.SourceFromFile(path))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// resolveSource turns --source or --example into a source and a loader able
// to read it.
func (a *app) resolveSource() (definitions.Source, definitions.Loader, error) {
	switch {
	case a.source != "" && a.example != "":
		return nil, nil, errors.New("--source and --example are mutually exclusive")
	case a.example != "":
		loader := fieldschema.NewLoader(definitions.WithFileSystem(fieldschema.ExamplesFS()))
		return definitions.SourceFromFS(a.example + ".yaml"), loader, nil
	case a.source != "":
		src, err := definitions.ParseSource(a.source)
		if err != nil {
			return nil, nil, err
		}
		var options []definitions.LoaderOption
		if src.Kind() == definitions.SourceKindURL {
			options = append(options, definitions.WithHTTPFallback(a.timeout))
		}
		return src, fieldschema.NewLoader(options...), nil
	default:
		return nil, nil, errors.New("--source or --example is required")
	}
}

// request resolves the shared flags into a generator and a request.
func (a *app) request(extra ...docgen.Option) (*docgen.Generator, docgen.Request, error) {
	src, loader, err := a.resolveSource()
	if err != nil {
		return nil, docgen.Request{}, err
	}
	req := docgen.Request{Source: src}

	if a.lang != "" {
		tag, err := language.Parse(a.lang)
		if err != nil {
			return nil, req, fmt.Errorf("invalid --lang %q: %w", a.lang, err)
		}
		req.Language = tag
	}

	options := []docgen.Option{docgen.WithLoader(loader)}
	if a.stripHTML {
		options = append(options, docgen.WithMapperOptions(mapper.WithStrippedHTML()))
	}
	options = append(options, extra...)

	a.logger.Printf("source %s (%s)", src.Location(), src.Kind())
	return docgen.New(options...), req, nil
}

func (a *app) pick(cmd *cobra.Command, names []string, current string) (string, error) {
	if len(names) == 0 {
		return "", errors.New("definitions declare no serializers")
	}
	if a.prompter == nil {
		return "", errors.New("interactive mode is not available")
	}
	idx, err := a.prompter.Select(cmd.Context(), SelectConfig{
		Message:      "Serializer",
		Options:      names,
		DefaultIndex: indexOf(names, current),
		PageSize:     10,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(names) {
		return "", fmt.Errorf("invalid selection %d", idx)
	}
	a.logger.Printf("selected serializer %s", names[idx])
	return names[idx], nil
}

func (a *app) write(path string, payload []byte) error {
	if path == "" {
		_, err := a.out.Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Printf("written to %s", path)
	return nil
}
