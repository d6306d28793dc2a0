package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/h64/homework-cloner/classroom"
	"github.com/h64/homework-cloner/errors"
)

// Config is the on-disk configuration for a classroom: the host to talk
// to, the instructor credentials, the organization that owns the
// homework repositories, and the student roster.
type Config struct {
	HostName    string              `yaml:"host_name" env:"HOMEWORK_HOST_NAME" env-default:"github.com"`
	Username    string              `yaml:"username" env:"HOMEWORK_USERNAME"`
	GithubToken string              `yaml:"github_token" env:"GITHUB_AUTH_TOKEN"`
	OrgName     string              `yaml:"org_name" env:"HOMEWORK_ORG_NAME"`
	Students    []classroom.Student `yaml:"students"`
}

// Load reads the config file at path, applies env overrides and
// validates the result.
func Load(path string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoad is Load, exiting on failure.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalln(err)
	}
	return cfg
}

// Validate ...
func (c Config) Validate() error {
	if c.GithubToken == "" {
		return errors.New("github_token must be set (or provided via GITHUB_AUTH_TOKEN)")
	}
	if c.OrgName == "" {
		return errors.New("org_name must be set")
	}
	return nil
}

// Roster returns the configured students as a classroom roster.
func (c Config) Roster() classroom.Roster {
	return classroom.Roster(c.Students)
}
