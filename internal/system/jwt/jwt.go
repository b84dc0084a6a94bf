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

// Package jwt provides signing of JWT assertions issued by the server.
package jwt

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/utils"
)

const defaultValidityPeriod = 3600

// JWTServiceInterface defines the operations for issuing signed JWT assertions.
type JWTServiceInterface interface {
	GenerateJWT(sub, aud string, customClaims map[string]interface{}) (string, error)
	GetPublicKey() *rsa.PublicKey
}

// JWTService issues RS256 signed JWT assertions.
type JWTService struct {
	issuer         string
	validityPeriod int64
	privateKey     *rsa.PrivateKey
}

// NewJWTService creates a JWT service with the given issuer, validity period in
// seconds and signing key.
func NewJWTService(issuer string, validityPeriod int64, privateKey *rsa.PrivateKey) *JWTService {
	if validityPeriod <= 0 {
		validityPeriod = defaultValidityPeriod
	}
	return &JWTService{
		issuer:         issuer,
		validityPeriod: validityPeriod,
		privateKey:     privateKey,
	}
}

// GenerateJWT generates a signed JWT for the given subject and audience.
// Custom claims are added on top of the registered claims and cannot override them.
func (s *JWTService) GenerateJWT(sub, aud string, customClaims map[string]interface{}) (string, error) {
	if s.privateKey == nil {
		return "", errors.New("signing key is not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{}
	for k, v := range customClaims {
		claims[k] = v
	}
	claims["iss"] = s.issuer
	claims["sub"] = sub
	claims["aud"] = aud
	claims["iat"] = now.Unix()
	claims["nbf"] = now.Unix()
	claims["exp"] = now.Add(time.Duration(s.validityPeriod) * time.Second).Unix()
	claims["jti"] = utils.GenerateUUID()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// GetPublicKey returns the public part of the signing key.
func (s *JWTService) GetPublicKey() *rsa.PublicKey {
	if s.privateKey == nil {
		return nil
	}
	return &s.privateKey.PublicKey
}

// LoadPrivateKey reads an RSA private key from a PEM encoded file.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read key file %s: %w", path, err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM data in key file %s", path)
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key in key file %s: %w", path, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("key file %s does not contain an RSA private key", path)
	}
	return key, nil
}
