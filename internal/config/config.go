// Package config assembles the server configuration from an optional
// YAML file and environment variables. Flags, handled in main, win
// over the environment; the environment wins over the file.
package config

import (
	"os"

	"github.com/contratoseguro/contratos/internal/errl"
	"github.com/contratoseguro/contratos/internal/models"
	"github.com/goccy/go-yaml"
)

// Config is the full server configuration, immutable after startup.
type Config struct {
	Development bool `yaml:"development"`

	// Port and PublicURL of the HTTP server. PublicURL is what goes
	// into download links and the relying-party identity of the gate.
	Port      string `yaml:"port"`
	PublicURL string `yaml:"public_url"`

	// RPID/RPName identify this deployment to the platform credential
	// API. RPID defaults to the host of PublicURL when empty.
	RPID   string `yaml:"rp_id"`
	RPName string `yaml:"rp_name"`

	// AdminPassword gates the archive listing (bcrypt-compared).
	AdminPassword string `yaml:"admin_password"`

	DBPath string `yaml:"db_path"`

	// GateEnabled turns the device-credential gate on. Off, the form
	// renders for everyone.
	GateEnabled bool `yaml:"gate_enabled"`

	// Attorney is the fixed attorney-in-fact interpolated into the
	// power-of-attorney clause.
	Attorney models.AttorneyParty `yaml:"procurador"`
}

// Default returns the built-in configuration values.
func Default() Config {
	return Config{
		Port:        "8020",
		PublicURL:   "http://localhost:8020",
		RPName:      "Contrato Seguro",
		DBPath:      "./contratos.db",
		GateEnabled: true,
	}
}

// LoadFile merges a YAML file over cfg. A missing path is not an
// error: the file is optional.
func LoadFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errl.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errl.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// FromEnv overrides cfg with the recognized environment variables.
// The PROCURADOR_* names match what the deployment already sets for
// the attorney party.
func FromEnv(cfg *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&cfg.Port, "CONTRATOS_PORT")
	setString(&cfg.PublicURL, "CONTRATOS_URL")
	setString(&cfg.RPID, "CONTRATOS_RP_ID")
	setString(&cfg.RPName, "CONTRATOS_RP_NAME")
	setString(&cfg.AdminPassword, "CONTRATOS_ADMIN_PASSWORD")
	setString(&cfg.DBPath, "CONTRATOS_DB")

	setString(&cfg.Attorney.Nome, "PROCURADOR_NOME")
	setString(&cfg.Attorney.EstadoCivil, "PROCURADOR_ESTADO_CIVIL")
	setString(&cfg.Attorney.RG, "PROCURADOR_RG")
	setString(&cfg.Attorney.CPF, "PROCURADOR_CPF")
	setString(&cfg.Attorney.Endereco, "PROCURADOR_ENDERECO")
}
