package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Loader reads configuration from a file and layers environment variable
// overrides on top. Environment names are built from the yaml tags, upper
// cased, joined with underscores under the loader prefix.
type Loader struct {
	envPrefix string
}

// NewLoader creates a configuration loader with the given env prefix.
func NewLoader(envPrefix string) *Loader {
	return &Loader{envPrefix: envPrefix}
}

// Load reads the file (when path is non-empty) and then applies env
// overrides. File values lose to environment values.
func (l *Loader) Load(configPath string, config interface{}) error {
	if err := l.LoadFromFile(configPath, config); err != nil {
		return err
	}
	return l.LoadFromEnv(config)
}

// LoadFromFile loads YAML or JSON configuration based on file extension.
func (l *Loader) LoadFromFile(configPath string, config interface{}) error {
	if configPath == "" {
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", configPath, err)
	}

	switch ext := strings.ToLower(filepath.Ext(configPath)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("parse YAML config %s: %w", configPath, err)
		}
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("parse JSON config %s: %w", configPath, err)
		}
	default:
		return fmt.Errorf("unsupported config format %s (supported: .yaml, .yml, .json)", ext)
	}
	return nil
}

// LoadFromEnv overrides config fields from environment variables.
func (l *Loader) LoadFromEnv(config interface{}) error {
	return l.applyEnv(reflect.ValueOf(config).Elem(), "")
}

func (l *Loader) applyEnv(value reflect.Value, prefix string) error {
	if !value.IsValid() || !value.CanSet() {
		return nil
	}

	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			value.Set(reflect.New(value.Type().Elem()))
		}
		return l.applyEnv(value.Elem(), prefix)

	case reflect.Struct:
		structType := value.Type()
		for i := 0; i < value.NumField(); i++ {
			field := value.Field(i)
			if !field.CanSet() {
				continue
			}

			tag := structType.Field(i).Tag.Get("yaml")
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			if tag == "" || tag == "-" {
				tag = strings.ToLower(structType.Field(i).Name)
			}
			key := tag
			if prefix != "" {
				key = prefix + "_" + tag
			}

			if field.Kind() == reflect.Struct ||
				(field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct) {
				if err := l.applyEnv(field, key); err != nil {
					return err
				}
				continue
			}

			envName := strings.ToUpper(key)
			if l.envPrefix != "" {
				envName = l.envPrefix + "_" + envName
			}
			if envValue := os.Getenv(envName); envValue != "" {
				if err := setField(field, envValue); err != nil {
					return fmt.Errorf("env %s: %w", envName, err)
				}
			}
		}
	}
	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool %q", value)
		}
		field.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration %q", value)
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid int %q", value)
		}
		field.SetInt(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float %q", value)
		}
		field.SetFloat(f)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		field.Set(reflect.ValueOf(parts))

	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}
