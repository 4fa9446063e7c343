/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"jinr.ru/greenlab/go-ump/pkg/log"
)

type ErrConfigFileExists struct {
	Path string
}

func (e ErrConfigFileExists) Error() string {
	return fmt.Sprintf("Config file already exists: %s", e.Path)
}

type ApiConfig struct {
	Address string `yaml:"address,omitempty"`
	Port    int    `yaml:"port,omitempty"`
}

type StoreConfig struct {
	DBPath string `yaml:"dbPath,omitempty"`
}

type ParserConfig struct {
	MaxWords int `yaml:"maxWords"`
}

type AccumulatorConfig struct {
	MaxBytes      int  `yaml:"maxBytes"`
	AllowRealTime bool `yaml:"allowRealTime"`
}

type Config struct {
	LogLevel           string `yaml:"logLevel,omitempty"`
	*ApiConfig         `yaml:"api,omitempty"`
	*StoreConfig       `yaml:"store,omitempty"`
	*ParserConfig      `yaml:"parser,omitempty"`
	*AccumulatorConfig `yaml:"accumulator,omitempty"`
	filepath           string
}

func (c *Config) Path() string {
	return c.filepath
}

func (c *Config) SetPath(path string) {
	c.filepath = path
}

// ApiEndpoint returns the base URL of the API server
func (c *Config) ApiEndpoint() string {
	return fmt.Sprintf("http://%s:%d", c.ApiConfig.Address, c.ApiConfig.Port)
}

// ListenAddress returns the address the API server binds
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.ApiConfig.Address, c.ApiConfig.Port)
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.ApiConfig.Port <= 0 || c.ApiConfig.Port > 65535 {
		return fmt.Errorf("Wrong api port %d", c.ApiConfig.Port)
	}
	if c.ParserConfig.MaxWords < 0 || c.ParserConfig.MaxWords%2 != 0 {
		return fmt.Errorf("Wrong parser maxWords %d. Must be a non negative even number", c.ParserConfig.MaxWords)
	}
	if c.AccumulatorConfig.MaxBytes < 0 || c.AccumulatorConfig.MaxBytes == 1 {
		return fmt.Errorf("Wrong accumulator maxBytes %d. Must be 0 or at least 2", c.AccumulatorConfig.MaxBytes)
	}
	return nil
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

// Load reads the config file over the current values, so settings absent
// from the file keep their defaults
func (c *Config) Load() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	return c.Validate()
}

// LoadOrDefault loads the config at path. A missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	cfg.SetPath(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Debug("Config file %s not found, using defaults", path)
		return cfg, nil
	}
	if err := cfg.Load(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func DefaultConfigPath() string {
	return filepath.Join(homeDir(), ConfigDir, ConfigFile)
}

func DefaultDBPath() string {
	return filepath.Join(homeDir(), ConfigDir, DBFile)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return home
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		ApiConfig: &ApiConfig{
			Address: DefaultApiAddress,
			Port:    DefaultApiPort,
		},
		StoreConfig: &StoreConfig{
			DBPath: DefaultDBPath(),
		},
		ParserConfig: &ParserConfig{
			MaxWords: DefaultParserMaxWords,
		},
		AccumulatorConfig: &AccumulatorConfig{
			MaxBytes: DefaultAccumulatorMaxBytes,
		},
		filepath: DefaultConfigPath(),
	}
}
