package config

import (
	"context"
	"fmt"

	"github.com/databricks/databricks-sdk-go/config"
	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"
)

// Profile is one section of a .databrickscfg file. HTTPPath, Catalog and
// Schema are read from the same section when present.
type Profile struct {
	Name     string
	Config   *config.Config
	HTTPPath string
	Catalog  string
	Schema   string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load databricks profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(ctx context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	zerolog.Ctx(ctx).Debug().Strs("profiles", profiles).Msg("databricks profiles found")
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	host := section.Key("host").String()
	token := section.Key("token").String()
	if host == "" || token == "" {
		return nil, fmt.Errorf("profile %s: host and token are required", name)
	}

	return &Profile{
		Name: section.Name(),
		Config: &config.Config{
			Host:  host,
			Token: token,
		},
		HTTPPath: section.Key("http_path").String(),
		Catalog:  section.Key("catalog").String(),
		Schema:   section.Key("schema").String(),
	}, nil
}
