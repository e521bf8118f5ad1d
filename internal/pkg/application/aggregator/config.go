package aggregator

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/diwise/catalog-aggregator/pkg/catalog/client"
	yaml "gopkg.in/yaml.v2"
)

const DefaultBaseURL string = "https://swapi.dev/api"

type ResourceConfig struct {
	People  string `yaml:"people"`
	Planets string `yaml:"planets"`
}

type UpstreamConfig struct {
	BaseURL   string         `yaml:"baseURL"`
	Timeout   time.Duration  `yaml:"timeout"`
	MaxPages  int            `yaml:"maxPages"`
	Debug     bool           `yaml:"debug"`
	Resources ResourceConfig `yaml:"resources"`
}

func (u *UpstreamConfig) PeopleURL() string {
	return u.resourceURL(u.Resources.People)
}

func (u *UpstreamConfig) PlanetsURL() string {
	return u.resourceURL(u.Resources.Planets)
}

// resources may be configured either relative to the base url or as absolute urls
func (u *UpstreamConfig) resourceURL(resource string) string {
	if parsed, err := url.Parse(resource); err == nil && parsed.IsAbs() {
		return resource
	}

	return strings.TrimRight(u.BaseURL, "/") + "/" + strings.TrimLeft(resource, "/")
}

type SortingConfig struct {
	Fields []string `yaml:"fields"`
}

type Config struct {
	Upstream UpstreamConfig `yaml:"upstream"`
	Sorting  SortingConfig  `yaml:"sorting"`
}

func DefaultConfig() Config {
	return Config{
		Upstream: UpstreamConfig{
			BaseURL:  DefaultBaseURL,
			Timeout:  client.DefaultTimeout,
			MaxPages: client.DefaultMaxPages,
			Resources: ResourceConfig{
				People:  "people",
				Planets: "planets",
			},
		},
		Sorting: SortingConfig{
			Fields: []string{"name", "height", "mass"},
		},
	}
}

// LoadConfiguration reads a yaml configuration on top of the default configuration
func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("upstream base url must not be empty")
	}

	if _, err = ParseSortFields(cfg.Sorting.Fields); err != nil {
		return nil, err
	}

	return &cfg, nil
}
