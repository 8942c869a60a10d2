package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is everything the command binaries need to build a client.
// Values come from an optional YAML file, overridden by environment
// variables (a .env file is honored when present).
type Config struct {
	Host          string `yaml:"host"`
	RelayerHost   string `yaml:"relayerHost"`
	ChainID       int    `yaml:"chainId"`
	SignatureType int    `yaml:"signatureType"`
	Funder        string `yaml:"funder"`
	RPCURL        string `yaml:"rpcUrl"`

	// CredentialsFile is the JSON file holding user API credentials
	// ({"apiKey": ..., "secret": ..., "passphrase": ...}).
	CredentialsFile string `yaml:"credentialsFile"`

	Builder struct {
		APIKey     string `yaml:"apiKey"`
		Secret     string `yaml:"secret"`
		Passphrase string `yaml:"passphrase"`
	} `yaml:"builder"`

	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Defaults for fields the file/env leave empty.
const (
	DefaultHost        = "https://clob.polymarket.com"
	DefaultRelayerHost = "https://relayer-v2.polymarket.com"
	DefaultRPCURL      = "https://polygon-rpc.com"
	DefaultChainID     = 137
)

// Load reads the optional YAML file at path (skipped when path is empty or
// missing), then applies environment overrides.
func Load(path string) (*Config, error) {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setStr(&cfg.Host, "CLOB_HOST")
	setStr(&cfg.RelayerHost, "RELAYER_HOST")
	setInt(&cfg.ChainID, "CHAIN_ID")
	setInt(&cfg.SignatureType, "SIGNATURE_TYPE")
	setStr(&cfg.Funder, "FUNDER_ADDRESS")
	setStr(&cfg.RPCURL, "RPC_URL")
	setStr(&cfg.CredentialsFile, "CREDENTIALS_FILE")
	setStr(&cfg.Builder.APIKey, "BUILDER_API_KEY")
	setStr(&cfg.Builder.Secret, "BUILDER_SECRET")
	setStr(&cfg.Builder.Passphrase, "BUILDER_PASSPHRASE")
	setStr(&cfg.Log.Level, "LOG_LEVEL")
	setStr(&cfg.Log.File, "LOG_FILE")
}

func applyDefaults(cfg *Config) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.RelayerHost == "" {
		cfg.RelayerHost = DefaultRelayerHost
	}
	if cfg.RPCURL == "" {
		cfg.RPCURL = DefaultRPCURL
	}
	if cfg.ChainID == 0 {
		cfg.ChainID = DefaultChainID
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = "credentials.json"
	}
}

// PrivateKeyHex reads the signing key from the environment. It is never
// stored in the YAML file.
func PrivateKeyHex() string {
	return os.Getenv("PRIVATE_KEY")
}

// Mnemonic reads the optional HD wallet mnemonic from the environment.
func Mnemonic() string {
	return os.Getenv("MNEMONIC")
}
