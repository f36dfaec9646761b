package parser

// fileSpec is the on-disk shape of a definitions document.
type fileSpec struct {
	Title        string                       `yaml:"title"`
	Description  string                       `yaml:"description"`
	Version      string                       `yaml:"version"`
	URL          string                       `yaml:"url"`
	Serializers  map[string]serializerSpec    `yaml:"serializers"`
	Endpoints    []endpointSpec               `yaml:"endpoints"`
	Translations map[string]map[string]string `yaml:"translations"`
}

type serializerSpec struct {
	Label     string      `yaml:"label"`
	HelpText  string      `yaml:"help_text"`
	Translate bool        `yaml:"translate"`
	Fields    []fieldSpec `yaml:"fields"`
}

type fieldSpec struct {
	Name      string            `yaml:"name"`
	Type      string            `yaml:"type"`
	Label     string            `yaml:"label"`
	HelpText  string            `yaml:"help_text"`
	Translate bool              `yaml:"translate"`
	Required  bool              `yaml:"required"`
	ReadOnly  bool              `yaml:"read_only"`
	Style     map[string]string `yaml:"style"`

	MinLength     *int     `yaml:"min_length"`
	MaxLength     *int     `yaml:"max_length"`
	MinValue      *float64 `yaml:"min_value"`
	MaxValue      *float64 `yaml:"max_value"`
	MaxDigits     *int     `yaml:"max_digits"`
	DecimalPlaces *int     `yaml:"decimal_places"`

	Format     string      `yaml:"format"`
	Pattern    string      `yaml:"pattern"`
	Choices    []any       `yaml:"choices"`
	Path       string      `yaml:"path"`
	Child      *fieldSpec  `yaml:"child"`
	Fields     []fieldSpec `yaml:"fields"`
	Serializer string      `yaml:"serializer"`
	Many       bool        `yaml:"many"`
	Relation   string      `yaml:"relation"`
	Schema     *schemaSpec `yaml:"schema"`
}

type schemaSpec struct {
	Type        string         `yaml:"type"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Format      string         `yaml:"format"`
	Pattern     string         `yaml:"pattern"`
	MinLength   *int           `yaml:"min_length"`
	MaxLength   *int           `yaml:"max_length"`
	Minimum     *float64       `yaml:"minimum"`
	Maximum     *float64       `yaml:"maximum"`
	Enum        []any          `yaml:"enum"`
	Items       *schemaSpec    `yaml:"items"`
	Properties  []propertySpec `yaml:"properties"`
}

type propertySpec struct {
	Name       string `yaml:"name"`
	schemaSpec `yaml:",inline"`
}

type endpointSpec struct {
	ID          string            `yaml:"id"`
	Path        string            `yaml:"path"`
	Method      string            `yaml:"method"`
	Description string            `yaml:"description"`
	Encoding    string            `yaml:"encoding"`
	Tags        []string          `yaml:"tags"`
	Request     string            `yaml:"request"`
	Response    string            `yaml:"response"`
	Many        bool              `yaml:"many"`
	Query       []fieldSpec       `yaml:"query"`
	Errors      map[string]string `yaml:"errors"`
}
