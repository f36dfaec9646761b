package fields_test

import (
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/goliatone/go-fieldschema/pkg/fields"
)

func TestTranslatableResolve(t *testing.T) {
	cat := catalog.NewBuilder()
	if err := cat.SetString(language.French, "Discount %", fields.EscapeFormat("Remise %")); err != nil {
		t.Fatalf("set string: %v", err)
	}
	if err := cat.SetString(language.French, "%d items", "%d articles"); err != nil {
		t.Fatalf("set string: %v", err)
	}
	fr := message.NewPrinter(language.French, message.Catalog(cat))
	en := message.NewPrinter(language.English, message.Catalog(cat))

	cases := []struct {
		name    string
		text    fields.Translatable
		printer *message.Printer
		want    string
	}{
		{name: "translated percent", text: fields.Translate("Discount %"), printer: fr, want: "Remise %"},
		{name: "missing percent", text: fields.Translate("Discount %"), printer: en, want: "Discount %"},
		{name: "no printer", text: fields.Translate("Discount %"), want: "Discount %"},
		{name: "args", text: fields.Translate("%d items", 3), printer: fr, want: "3 articles"},
		{name: "args without printer", text: fields.Translate("%d items", 3), want: "3 items"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.text.Resolve(tc.printer); got != tc.want {
				t.Fatalf("resolve = %q, want %q", got, tc.want)
			}
		})
	}
}
