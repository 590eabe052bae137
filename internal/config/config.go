package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInterval     = 5 * time.Second
	DefaultThreshold    = 3
	DefaultProbeTimeout = 2 * time.Second
)

// Probe kinds accepted in test definitions.
const (
	KindHTTP = "http"
	KindDNS  = "dns"
	KindTCP  = "tcp"
	KindPing = "ping"
)

var probeKinds = map[string]struct{}{
	KindHTTP: {},
	KindDNS:  {},
	KindTCP:  {},
	KindPing: {},
}

var validate = validator.New()

// Duration (un)marshals as a Go duration string ("5s", "250ms") in both
// YAML and JSON, so the config endpoint serves the same format operators
// write in the config file.
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// StringList accepts either a single scalar or a list in YAML, so that
// "mediums: telegram" and "mediums: [telegram, webhook]" both parse.
type StringList []string

func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	var single string
	if err := value.Decode(&single); err == nil {
		*s = StringList{single}
		return nil
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*s = list
	return nil
}

// Test is one probe definition, written as "<kind> <target> [timeout]".
// The raw form is preserved so it round-trips through YAML and JSON.
type Test struct {
	Kind    string
	Target  string
	Timeout time.Duration

	raw string
}

func parseTest(raw string) (Test, error) {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return Test{}, fmt.Errorf("test %q must be written as \"<kind> <target>\"", raw)
	}
	test := Test{
		Kind:    fields[0],
		Target:  fields[1],
		Timeout: DefaultProbeTimeout,
		raw:     raw,
	}
	if _, known := probeKinds[test.Kind]; !known {
		return Test{}, fmt.Errorf("unknown probe kind %q in test %q", test.Kind, raw)
	}
	if len(fields) > 2 {
		timeout, err := time.ParseDuration(fields[2])
		if err != nil || timeout <= 0 {
			return Test{}, fmt.Errorf("invalid timeout %q in test %q", fields[2], raw)
		}
		test.Timeout = timeout
	}
	return test, nil
}

func (t Test) Raw() string {
	return t.raw
}

func (t Test) MarshalYAML() (interface{}, error) {
	return t.raw, nil
}

func (t *Test) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := parseTest(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Test) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.raw)
}

func (t *Test) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := parseTest(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type Group struct {
	Name      string     `yaml:"name" json:"name" validate:"required"`
	Threshold int        `yaml:"threshold,omitempty" json:"threshold" validate:"gte=1"`
	Mediums   StringList `yaml:"mediums,omitempty" json:"mediums,omitempty"`
	Tests     []Test     `yaml:"tests" json:"tests" validate:"min=1"`
}

type Region struct {
	Name      string   `yaml:"name" json:"name" validate:"required"`
	Interval  Duration `yaml:"interval,omitempty" json:"interval"`
	Threshold int      `yaml:"threshold,omitempty" json:"threshold" validate:"gte=1"`
	Groups    []Group  `yaml:"groups,omitempty" json:"groups"`
}

type Config struct {
	Hash    string   `yaml:"-" json:"hash"`
	Regions []Region `yaml:"regions" json:"regions" validate:"min=1"`
}

// Load reads and parses the YAML configuration file.
func Load(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read configuration file: %w", err)
	}
	cfg, err := Parse(contents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document, applies defaults, validates the tree and
// computes the content hash.
func Parse(contents []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse YAML: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hash, err := cfg.computeHash()
	if err != nil {
		return nil, err
	}
	cfg.Hash = hash
	return &cfg, nil
}

func (c *Config) normalize() {
	for i := range c.Regions {
		region := &c.Regions[i]
		if region.Interval == 0 {
			region.Interval = Duration(DefaultInterval)
		}
		if region.Threshold == 0 {
			region.Threshold = DefaultThreshold
		}
		for j := range region.Groups {
			if region.Groups[j].Threshold == 0 {
				region.Groups[j].Threshold = DefaultThreshold
			}
		}
	}
}

// Validate checks the whole tree and reports the first violation with the
// path of the offending entry.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return describeFieldError(err)
	}
	seenRegions := make(map[string]struct{})
	for _, region := range c.Regions {
		if _, dup := seenRegions[region.Name]; dup {
			return fmt.Errorf("regions.%s: duplicate region name", region.Name)
		}
		seenRegions[region.Name] = struct{}{}
		if region.Interval <= 0 {
			return fmt.Errorf("regions.%s.interval: must be positive", region.Name)
		}
		seenGroups := make(map[string]struct{})
		for _, group := range region.Groups {
			if _, dup := seenGroups[group.Name]; dup {
				return fmt.Errorf("regions.%s.groups.%s: duplicate group name", region.Name, group.Name)
			}
			seenGroups[group.Name] = struct{}{}
		}
	}
	return nil
}

func describeFieldError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err
	}
	first := fieldErrors[0]
	return fmt.Errorf("%s: failed %q validation", first.Namespace(), first.Tag())
}

// computeHash digests the canonical YAML form of the region tree. Struct
// re-marshalling fixes map-key order while preserving list order, so the
// hash is stable under key reordering and sensitive to test reordering.
func (c *Config) computeHash() (string, error) {
	canonical, err := yaml.Marshal(c.Regions)
	if err != nil {
		return "", fmt.Errorf("could not canonicalize config: %w", err)
	}
	digest := sha256.Sum256(canonical)
	return hex.EncodeToString(digest[:]), nil
}

// Region returns the subtree for a region name, or nil when absent.
func (c *Config) Region(name string) *Region {
	for i := range c.Regions {
		if c.Regions[i].Name == name {
			return &c.Regions[i]
		}
	}
	return nil
}
