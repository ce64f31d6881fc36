// Copyright 2026 The Accessgate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "accessgate:revoked:"

// minTTL keeps a revocation entry alive even for credentials about to expire,
// covering clock skew between the issuer and this service.
const minTTL = time.Minute

// RevocationList is a redis-backed set of force-logged-out credentials. Only
// a SHA-256 of the credential is ever stored or transmitted.
type RevocationList struct {
	client *redis.Client
}

// Config holds redis connection configuration
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewRevocationList connects to redis and verifies the connection.
func NewRevocationList(ctx context.Context, cfg Config) (*RevocationList, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RevocationList{client: client}, nil
}

// NewRevocationListWithClient wraps an existing client; used by tests.
func NewRevocationListWithClient(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke marks a credential as cleared until it would have expired anyway.
func (l *RevocationList) Revoke(ctx context.Context, credential string, ttl time.Duration) error {
	if ttl < minTTL {
		ttl = minTTL
	}
	if err := l.client.Set(ctx, keyPrefix+hash(credential), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke credential: %w", err)
	}
	return nil
}

// IsRevoked reports whether the credential has been cleared.
func (l *RevocationList) IsRevoked(ctx context.Context, credential string) (bool, error) {
	n, err := l.client.Exists(ctx, keyPrefix+hash(credential)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return n > 0, nil
}

// Close releases the underlying client.
func (l *RevocationList) Close() error {
	return l.client.Close()
}

func hash(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}
