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

// Package client provides the database client used by the store layers.
package client

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/database/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
)

// DBClientInterface defines the operations supported by the database client.
type DBClientInterface interface {
	Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error)
	Execute(query model.DBQuery, args ...interface{}) (int64, error)
	Close() error
}

// DBClient wraps a sql.DB handle together with its driver type.
type DBClient struct {
	db         *sql.DB
	driverName string
}

// NewDBClient creates a database client for the given handle.
func NewDBClient(db *sql.DB, driverName string) *DBClient {
	return &DBClient{db: db, driverName: driverName}
}

// Query runs the given query and returns the result rows as maps keyed by column name.
func (c *DBClient) Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBClient"))

	rows, err := c.db.Query(c.translateQuery(query.Query), args...)
	if err != nil {
		logger.Error("Failed to execute query", log.String("queryID", query.ID), log.Error(err))
		return nil, fmt.Errorf("failed to execute query %s: %w", query.ID, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logger.Error("Failed to close result rows", log.String("queryID", query.ID), log.Error(closeErr))
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns for query %s: %w", query.ID, err)
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan result row for query %s: %w", query.ID, err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate result rows for query %s: %w", query.ID, err)
	}

	return results, nil
}

// Execute runs the given statement and returns the number of affected rows.
func (c *DBClient) Execute(query model.DBQuery, args ...interface{}) (int64, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBClient"))

	result, err := c.db.Exec(c.translateQuery(query.Query), args...)
	if err != nil {
		logger.Error("Failed to execute statement", log.String("queryID", query.ID), log.Error(err))
		return 0, fmt.Errorf("failed to execute statement %s: %w", query.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows for statement %s: %w", query.ID, err)
	}
	return affected, nil
}

// Close closes the underlying database handle.
func (c *DBClient) Close() error {
	return c.db.Close()
}

// translateQuery converts PostgreSQL style $N placeholders to ? placeholders
// for drivers that do not support them.
func (c *DBClient) translateQuery(query string) string {
	if c.driverName == "postgres" {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && isDigit(query[i+1]) {
			sb.WriteByte('?')
			for i+1 < len(query) && isDigit(query[i+1]) {
				i++
			}
			continue
		}
		sb.WriteByte(query[i])
	}
	return sb.String()
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
