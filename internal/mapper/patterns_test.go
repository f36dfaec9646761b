package mapper

import (
	"regexp"
	"testing"

	"github.com/goliatone/go-fieldschema/pkg/fields"
)

func TestRegexPatternUsesFirstRegexValidator(t *testing.T) {
	validators := []fields.Validator{
		fields.MinLengthValidator{Limit: 2},
		&fields.RegexValidator{Regex: regexp.MustCompile(`^a+$`)},
		fields.RegexValidator{Regex: regexp.MustCompile(`^b+$`)},
	}
	if got := regexPattern(validators); got != `^a+$` {
		t.Fatalf("pattern = %q, want ^a+$", got)
	}
	if got := regexPattern(nil); got != "" {
		t.Fatalf("pattern for no validators = %q, want empty", got)
	}
}

func TestURLPatternCompiles(t *testing.T) {
	re := regexp.MustCompile(URLPattern)
	for _, value := range []string{"http://example.com/index.html", "ftp://files.example.org/pub/file.tar.gz", "example.com/path/page"} {
		if !re.MatchString(value) {
			t.Fatalf("URL pattern should match %q", value)
		}
	}
}

func TestWalkerWithoutCycleDetectionStillMapsTrees(t *testing.T) {
	m := New(Options{DisableCycleDetection: true})
	s := fields.NewSerializer("Tree").Add("leaf", &fields.ListField{Child: &fields.BooleanField{}})
	if _, err := m.Map(s); err != nil {
		t.Fatalf("map: %v", err)
	}
}
