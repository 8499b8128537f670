package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig is the on-disk shape of the optional config file.
// The same keys are used for JSON and YAML.
type StructuredFileConfig struct {
	BaseDir string `json:"base_dir" yaml:"base_dir"`

	App struct {
		SecretKey        string `json:"secret_key" yaml:"secret_key"`
		Debug            string `json:"debug" yaml:"debug"`
		AllowedHosts     string `json:"allowed_hosts" yaml:"allowed_hosts"`
		GoogleMapsAPIKey string `json:"google_maps_api_key" yaml:"google_maps_api_key"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Database struct {
		URL      string `json:"url" yaml:"url"`
		Postgres struct {
			DB       string `json:"db" yaml:"db"`
			User     string `json:"user" yaml:"user"`
			Password string `json:"password" yaml:"password"`
			Host     string `json:"host" yaml:"host"`
			Port     string `json:"port" yaml:"port"`
		} `json:"postgres,omitempty" yaml:"postgres,omitempty"`
	} `json:"database,omitempty" yaml:"database,omitempty"`

	Server struct {
		Address             string   `json:"address" yaml:"address"`
		ShutdownTimeout     Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
		ReadHeaderTimeout   Duration `json:"read_header_timeout" yaml:"read_header_timeout"`
		RateLimitRPS        float64  `json:"rate_limit_rps" yaml:"rate_limit_rps"`
		RateLimitBurst      int      `json:"rate_limit_burst" yaml:"rate_limit_burst"`
		TrustForwardedProto bool     `json:"trust_forwarded_proto" yaml:"trust_forwarded_proto"`
	} `json:"server,omitempty" yaml:"server,omitempty"`

	Upload struct {
		Bucket          string `json:"bucket" yaml:"bucket"`
		Region          string `json:"region" yaml:"region"`
		Endpoint        string `json:"endpoint" yaml:"endpoint"`
		AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
		SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
	} `json:"upload,omitempty" yaml:"upload,omitempty"`
}

// parseFile reads a JSON or YAML config file. The format is chosen by
// extension: .yaml and .yml are YAML, everything else is JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return &StructuredConfig{
		BaseDir: fileCfg.BaseDir,
		App: App{
			SecretKey:        fileCfg.App.SecretKey,
			Debug:            fileCfg.App.Debug,
			AllowedHosts:     fileCfg.App.AllowedHosts,
			GoogleMapsAPIKey: fileCfg.App.GoogleMapsAPIKey,
		},
		Database: DatabaseSources{
			URL: fileCfg.Database.URL,
			Postgres: Postgres{
				DB:       fileCfg.Database.Postgres.DB,
				User:     fileCfg.Database.Postgres.User,
				Password: fileCfg.Database.Postgres.Password,
				Host:     fileCfg.Database.Postgres.Host,
				Port:     fileCfg.Database.Postgres.Port,
			},
		},
		Server: Server{
			Address:             fileCfg.Server.Address,
			ShutdownTimeout:     time.Duration(fileCfg.Server.ShutdownTimeout),
			ReadHeaderTimeout:   time.Duration(fileCfg.Server.ReadHeaderTimeout),
			RateLimitRPS:        fileCfg.Server.RateLimitRPS,
			RateLimitBurst:      fileCfg.Server.RateLimitBurst,
			TrustForwardedProto: fileCfg.Server.TrustForwardedProto,
		},
		Upload: Upload{
			Bucket:          fileCfg.Upload.Bucket,
			Region:          fileCfg.Upload.Region,
			Endpoint:        fileCfg.Upload.Endpoint,
			AccessKeyID:     fileCfg.Upload.AccessKeyID,
			SecretAccessKey: fileCfg.Upload.SecretAccessKey,
		},
	}, nil
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" as well as from plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if err := node.Decode(&n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
