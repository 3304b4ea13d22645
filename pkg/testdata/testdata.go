// Package testdata loads the shopping scenarios the suite runs.
//
// Fixtures live in a JSON or YAML file with a top-level "data" list;
// each entry describes one full shopping journey from login to
// checkout. The field names follow the fixture files the suite has
// always shipped with.
package testdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Environment overrides applied to every loaded scenario, so CI can
// inject account credentials instead of committing them to the
// fixture file.
const (
	EnvUserEmail = "STOREFRONT_USER_EMAIL"
	EnvPassword  = "STOREFRONT_PASSWORD"
)

// Scenario is one data-driven shopping journey.
type Scenario struct {
	UserEmail   string `json:"userEmail" yaml:"userEmail"`
	Password    string `json:"passWord" yaml:"passWord"`
	MenuName    string `json:"menuName" yaml:"menuName"`
	SubMenuName string `json:"subMenuName" yaml:"subMenuName"`
	SortBy      string `json:"sortBy" yaml:"sortBy"`
	ProductName string `json:"productName" yaml:"productName"`

	// Checkout form values
	Email            string `json:"email" yaml:"email"`
	LastName         string `json:"lastName" yaml:"lastName"`
	FirstName        string `json:"firstName" yaml:"firstName"`
	PostalCode       string `json:"postalCode" yaml:"postalCode"`
	Phone            string `json:"phone" yaml:"phone"`
	PhoneCountryCode string `json:"phone_country_select" yaml:"phone_country_select"`

	// Optional size to pick on the product page
	Size string `json:"size,omitempty" yaml:"size,omitempty"`
}

// file is the fixture file envelope.
type file struct {
	Data []Scenario `json:"data" yaml:"data"`
}

// Load reads scenarios from a JSON or YAML fixture file.
func Load(path string) ([]Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file %s: %w", path, err)
	}

	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported test data format %q", ext)
	}

	if len(f.Data) == 0 {
		return nil, fmt.Errorf("test data file %s contains no scenarios", path)
	}

	applyEnvOverrides(f.Data)
	return f.Data, nil
}

func applyEnvOverrides(scenarios []Scenario) {
	email := os.Getenv(EnvUserEmail)
	password := os.Getenv(EnvPassword)
	if email == "" && password == "" {
		return
	}

	for i := range scenarios {
		if email != "" {
			scenarios[i].UserEmail = email
		}
		if password != "" {
			scenarios[i].Password = password
		}
	}
}

// Validate checks that every field a full journey needs is present.
// The error names all missing fields at once.
func (s Scenario) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"userEmail", s.UserEmail},
		{"passWord", s.Password},
		{"menuName", s.MenuName},
		{"subMenuName", s.SubMenuName},
		{"sortBy", s.SortBy},
		{"productName", s.ProductName},
		{"email", s.Email},
		{"lastName", s.LastName},
		{"firstName", s.FirstName},
		{"postalCode", s.PostalCode},
		{"phone", s.Phone},
		{"phone_country_select", s.PhoneCountryCode},
	}

	var missing []string
	for _, field := range required {
		if field.value == "" {
			missing = append(missing, field.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("scenario %q missing required fields: %s", s.ProductName, strings.Join(missing, ", "))
	}
	return nil
}

// ID returns a stable name for subtests and report rows.
func (s Scenario) ID() string {
	if s.ProductName == "" {
		return "unnamed-scenario"
	}
	return strings.ReplaceAll(s.ProductName, " ", "_")
}

// Filter returns the scenarios whose product name matches the glob
// pattern. An empty pattern keeps everything.
func Filter(scenarios []Scenario, pattern string) ([]Scenario, error) {
	if pattern == "" {
		return scenarios, nil
	}

	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario filter %q: %w", pattern, err)
	}

	var matched []Scenario
	for _, s := range scenarios {
		if matcher.Match(s.ProductName) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}
