package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

// Config is the root configuration of the service, loaded from <env>.yaml
// with environment-variable overrides.
type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Bot configures the conversational session layer.
	Bot BotConfig `json:"bot" yaml:"bot"`

	// ViaCEP configures the external postal-code lookup.
	ViaCEP *ViaCEPConfig `json:"viacep" yaml:"viacep"`

	// AMQP configures the order-event publisher. Optional: when nil, status
	// changes are not published.
	AMQP *AMQPConfig `json:"amqp" yaml:"amqp"`
}

// Log configures the slog handler.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// BotConfig defines dialogue policy knobs.
type BotConfig struct {
	// AutoLoginAfterRegister authenticates the session as soon as
	// registration succeeds. When false the customer must send "login"
	// explicitly after registering.
	AutoLoginAfterRegister bool `json:"autoLoginAfterRegister" yaml:"autoLoginAfterRegister"`

	// SessionIdleTimeout evicts sessions with no inbound message for this
	// long. Zero disables eviction.
	SessionIdleTimeout time.Duration `json:"sessionIdleTimeout" yaml:"sessionIdleTimeout"`

	// OrderListLimit caps how many orders the "pedidos" command shows.
	OrderListLimit int `json:"orderListLimit" yaml:"orderListLimit"`
}

// ViaCEPConfig defines the postal lookup endpoint and its request timeout.
type ViaCEPConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// AMQPConfig defines the RabbitMQ connection for order events.
type AMQPConfig struct {
	URL      string `json:"url" yaml:"url"`
	Exchange string `json:"exchange" yaml:"exchange"`
}

// New loads the configuration for the environment named by the ENV variable
// (default "dev"). Used as an Fx provider.
func New() (*Config, error) {
	currEnv := os.Getenv("ENV")
	if currEnv == "" {
		currEnv = "dev"
	}

	return LoadWithEnv[Config](currEnv, "config")
}

// LoadWithEnv loads <currEnv>.yaml through koanf, then overlays environment
// variables (ENV_VAR_NAME -> env.var.name) on top of it.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for the config file.
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	// Load environment variables on top of the file values.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// POSTGRES_HOST -> postgres.host
			return strings.ReplaceAll(strings.ToLower(k), "_", "."), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars).
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}
