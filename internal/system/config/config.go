/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	HTTPOnly bool   `yaml:"http_only"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type     string `yaml:"type"`
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
	Options  string `yaml:"options"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Identity DataSource `yaml:"identity"`
}

// RedisConfig holds the Redis connection details for the flow cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CacheConfig holds the flow cache configuration details.
type CacheConfig struct {
	Type     string      `yaml:"type"`
	Disabled bool        `yaml:"disabled"`
	Size     int         `yaml:"size"`
	TTL      int         `yaml:"ttl"`
	Redis    RedisConfig `yaml:"redis"`
}

// AssertionConfig holds the completion assertion signing configuration details.
type AssertionConfig struct {
	Issuer         string `yaml:"issuer"`
	ValidityPeriod int64  `yaml:"validity_period"`
	KeyFile        string `yaml:"key_file"`
}

// ApplicationFlowConfig binds an application to its configured flow graphs.
type ApplicationFlowConfig struct {
	AppID                   string `yaml:"app_id"`
	AuthFlowGraphID         string `yaml:"auth_flow_graph_id"`
	RegistrationFlowGraphID string `yaml:"registration_flow_graph_id"`
	RegistrationEnabled     bool   `yaml:"registration_enabled"`
}

// FlowAuthnConfig holds the configuration details for the authentication flows.
type FlowAuthnConfig struct {
	DefaultFlow string `yaml:"default_flow"`
}

// FlowConfig holds the configuration details for the flow orchestration engine.
type FlowConfig struct {
	GraphDirectory string                  `yaml:"graph_directory"`
	Authn          FlowAuthnConfig         `yaml:"authn"`
	Applications   []ApplicationFlowConfig `yaml:"applications"`
}

// Config holds the complete server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Security  SecurityConfig  `yaml:"security"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	Flow      FlowConfig      `yaml:"flow"`
	Assertion AssertionConfig `yaml:"assertion"`
}

// LoadConfig loads the server configuration from the given YAML file.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cleanPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", cleanPath, err)
	}

	return &cfg, nil
}

// GetApplicationFlowConfig returns the flow configuration bound to the given application ID.
func (c *Config) GetApplicationFlowConfig(appID string) *ApplicationFlowConfig {
	for i := range c.Flow.Applications {
		if c.Flow.Applications[i].AppID == appID {
			return &c.Flow.Applications[i]
		}
	}
	return nil
}
