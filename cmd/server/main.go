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

package main

import (
	"crypto/rsa"
	"flag"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/executor"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/engine"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/flowmgt"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/handler"
	flowstore "github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/store"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/cache"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/config"
	dbprovider "github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/database/provider"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/jwt"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
	userservice "github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/service"
	userstore "github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/store"
)

func main() {
	home := flag.String("home", ".", "server home directory")
	configPath := flag.String("config", "repository/conf/deployment.yaml", "path to the server configuration file")
	flag.Parse()

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Server"))

	cfgPath := *configPath
	if !filepath.IsAbs(cfgPath) {
		cfgPath = filepath.Join(*home, cfgPath)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load the server configuration", log.Error(err))
	}
	if err := config.InitializeRuntime(*home, cfg); err != nil {
		logger.Fatal("Failed to initialize the runtime configuration", log.Error(err))
	}

	provider := dbprovider.NewDBProvider(cfg.Database.Identity, *home)
	userService := userservice.NewUserService(userstore.NewUserStore(provider))

	jwtService := jwt.NewJWTService(cfg.Assertion.Issuer, cfg.Assertion.ValidityPeriod,
		loadSigningKey(cfg, *home, logger))

	registry := executor.NewRegistry(userService, jwtService)

	flowMgtService := flowmgt.NewFlowMgtService(cfg.Flow, *home, registry)
	if err := flowMgtService.Init(); err != nil {
		logger.Fatal("Failed to initialize the flow management service", log.Error(err))
	}

	flowCache, err := cache.NewCache[flowstore.FlowContextRecord]("FlowContext", cfg.Cache)
	if err != nil {
		logger.Fatal("Failed to initialize the flow context cache", log.Error(err))
	}

	flowService := flow.NewFlowExecService(flowstore.NewFlowStore(flowCache), flowMgtService,
		engine.NewFlowEngine(), cfg)
	flowExecHandler := handler.NewFlowExecutionHandler(flowService)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /flow/execute", flowExecHandler.HandleFlowExecutionRequest)
	mux.HandleFunc("GET /health/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Server.HTTPOnly {
		logger.Info("Server listening", log.String("address", addr))
		if err := server.ListenAndServe(); err != nil {
			logger.Fatal("Server terminated", log.Error(err))
		}
		return
	}

	certFile := resolvePath(cfg.Security.CertFile, *home)
	keyFile := resolvePath(cfg.Security.KeyFile, *home)
	logger.Info("Server listening with TLS", log.String("address", addr))
	if err := server.ListenAndServeTLS(certFile, keyFile); err != nil {
		logger.Fatal("Server terminated", log.Error(err))
	}
}

// loadSigningKey loads the assertion signing key when one is configured. The
// server still starts without it; flows then complete without an assertion.
func loadSigningKey(cfg *config.Config, home string, logger *log.Logger) *rsa.PrivateKey {
	if cfg.Assertion.KeyFile == "" {
		logger.Warn("Assertion signing key is not configured; flows will complete without assertions")
		return nil
	}

	key, err := jwt.LoadPrivateKey(resolvePath(cfg.Assertion.KeyFile, home))
	if err != nil {
		logger.Fatal("Failed to load the assertion signing key", log.Error(err))
	}
	return key
}

func resolvePath(path, home string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(home, path)
}
