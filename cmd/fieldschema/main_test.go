package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakePrompter struct {
	choice string
	seen   []string
	err    error
}

func (f *fakePrompter) Select(_ context.Context, cfg SelectConfig) (int, error) {
	f.seen = cfg.Options
	if f.err != nil {
		return 0, f.err
	}
	return indexOf(cfg.Options, f.choice), nil
}

func run(t *testing.T, prompter Prompter, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand(&out, prompter)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestListSerializers(t *testing.T) {
	out, err := run(t, nil, "list", "--example", "snippets")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff("Snippet\nUser\n", out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestListEndpoints(t *testing.T) {
	out, err := run(t, nil, "list", "--example", "snippets", "--endpoints")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "PATCH   /snippets/{id}/\tsnippets_partial_update") {
		t.Fatalf("output = %q", out)
	}
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, nil, "schema", "--example", "snippets", "--serializer", "Snippet", "--lang", "es")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	var payload struct {
		Type       string `json:"type"`
		Title      string `json:"title"`
		Properties map[string]struct {
			Title  string `json:"title"`
			Format string `json:"format"`
		} `json:"properties"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if payload.Type != "object" || payload.Title != "Snippet" {
		t.Fatalf("payload = %+v", payload)
	}
	if got := payload.Properties["title"].Title; got != "Título" {
		t.Fatalf("title = %q, want Título", got)
	}
	if got := payload.Properties["code"].Format; got != "textarea" {
		t.Fatalf("code format = %q, want textarea", got)
	}
}

func TestSchemaCommandRequiresSerializer(t *testing.T) {
	_, err := run(t, nil, "schema", "--example", "snippets")
	if err == nil || !strings.Contains(err.Error(), "Snippet, User") {
		t.Fatalf("error = %v, want serializer list", err)
	}
}

func TestSchemaCommandInteractive(t *testing.T) {
	prompter := &fakePrompter{choice: "User"}
	out, err := run(t, prompter, "schema", "--example", "snippets", "--interactive", "--format", "yaml")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if diff := cmp.Diff([]string{"Snippet", "User"}, prompter.seen); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out, "title: User") {
		t.Fatalf("output = %s", out)
	}

	aborted := &fakePrompter{err: ErrAborted}
	if _, err := run(t, aborted, "schema", "--example", "snippets", "-i"); !errors.Is(err, ErrAborted) {
		t.Fatalf("error = %v, want ErrAborted", err)
	}
}

func TestOpenAPICommandWritesFile(t *testing.T) {
	dir := t.TempDir()
	defs := filepath.Join(dir, "defs.yaml")
	if err := os.WriteFile(defs, []byte("title: Tiny\nversion: \"1\"\nserializers:\n  Ping:\n    fields:\n      - name: ok\n        type: boolean\nendpoints:\n  - path: /ping/\n    response: Ping\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	target := filepath.Join(dir, "openapi.json")

	out, err := run(t, nil, "openapi", "--source", defs, "--format", "json", "--output", target, "--validate")
	if err != nil {
		t.Fatalf("openapi: %v", err)
	}
	if out != "" {
		t.Fatalf("stdout = %q, want empty", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `"operationId": "get:/ping/"`) {
		t.Fatalf("output = %s", data)
	}
}

func TestSourceFlagErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing", args: []string{"list"}, want: "--source or --example is required"},
		{name: "both", args: []string{"list", "--source", "a.yaml", "--example", "snippets"}, want: "mutually exclusive"},
		{name: "bad lang", args: []string{"list", "--example", "snippets", "--lang", "not a tag!"}, want: "invalid --lang"},
		{name: "bad format", args: []string{"openapi", "--example", "snippets", "--format", "xml"}, want: "unsupported format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, nil, tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestLintCommand(t *testing.T) {
	if out, err := run(t, nil, "lint", "--example", "snippets"); err != nil {
		t.Fatalf("lint example: %v\n%s", err, out)
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("serializers:\n  Node:\n    fields:\n      - name: next\n        type: serializer\n        serializer: Node\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, err := run(t, nil, "lint", bad)
	if err == nil || !strings.Contains(err.Error(), "1 issue(s)") {
		t.Fatalf("error = %v, want one issue", err)
	}
	if !strings.Contains(out, "Node.next.next -> recursive field structure") {
		t.Fatalf("output = %q", out)
	}

	if _, err := run(t, nil, "lint", "--allow-recursive", bad); err != nil {
		t.Fatalf("lint with --allow-recursive: %v", err)
	}
}
