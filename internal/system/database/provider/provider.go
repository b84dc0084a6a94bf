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

// Package provider creates database clients from the server configuration.
package provider

import (
	"database/sql"
	"fmt"
	"path/filepath"

	// PostgreSQL driver registered as "postgres".
	_ "github.com/lib/pq"
	// SQLite driver registered as "sqlite".
	_ "modernc.org/sqlite"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/config"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/database/client"
)

// DBProviderInterface creates database clients for configured data sources.
type DBProviderInterface interface {
	GetDBClient() (client.DBClientInterface, error)
}

// DBProvider creates database clients for the identity data source.
type DBProvider struct {
	dataSource config.DataSource
	home       string
}

// NewDBProvider creates a database provider for the given data source.
// The home path is used to resolve relative SQLite database paths.
func NewDBProvider(dataSource config.DataSource, home string) *DBProvider {
	return &DBProvider{dataSource: dataSource, home: home}
}

// GetDBClient opens a database connection for the configured data source.
func (p *DBProvider) GetDBClient() (client.DBClientInterface, error) {
	switch p.dataSource.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
			p.dataSource.Hostname, p.dataSource.Port, p.dataSource.Name,
			p.dataSource.Username, p.dataSource.Password, p.dataSource.SSLMode)
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres connection: %w", err)
		}
		return client.NewDBClient(db, "postgres"), nil
	case "sqlite":
		path := p.dataSource.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.home, path)
		}
		dsn := path
		if p.dataSource.Options != "" {
			dsn = fmt.Sprintf("%s?%s", path, p.dataSource.Options)
		}
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite connection: %w", err)
		}
		return client.NewDBClient(db, "sqlite"), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", p.dataSource.Type)
	}
}
