// Package redisreserver reserves idempotency tokens in Redis so that several service instances share the same view
// of admitted tokens.
package redisreserver

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
)

const (
	DefaultNamespace = "provisioner"
	operation        = "token"
)

var _ idempotency.IReserver = &Reserver{}

type Reserver struct {
	client    redis.UniversalClient
	namespace string
}

// New returns a reserver using an existing client.
func New(client redis.UniversalClient, namespace string) *Reserver {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Reserver{client: client, namespace: namespace}
}

// NewFromAddress returns a reserver connecting to the Redis server at addr.
func NewFromAddress(addr, namespace string) *Reserver {
	return New(redis.NewClient(&redis.Options{Addr: addr}), namespace)
}

// GenerateKey returns the key under which a token is stored.
func (r *Reserver) GenerateKey(token string) string {
	return fmt.Sprintf("%s:%s:%s", r.namespace, operation, token)
}

func (r *Reserver) Reserve(ctx context.Context, token, projectCode string, ttl time.Duration) error {
	if token == "" {
		return commonerrors.UndefinedVariable("token")
	}
	ok, err := r.client.SetNX(ctx, r.GenerateKey(token), projectCode, ttl).Result()
	if err != nil {
		if cErr := commonerrors.ConvertContextError(ctx.Err()); cErr != nil {
			return cErr
		}
		return commonerrors.WrapError(commonerrors.ErrUnavailable, err, "could not reserve token")
	}
	if !ok {
		return commonerrors.Newf(commonerrors.ErrConflict, "token %v was already reserved", token)
	}
	return nil
}

// ReservedBy returns the project code a token was reserved for.
func (r *Reserver) ReservedBy(ctx context.Context, token string) (string, error) {
	projectCode, err := r.client.Get(ctx, r.GenerateKey(token)).Result()
	if err == redis.Nil {
		return "", commonerrors.Newf(commonerrors.ErrNotFound, "token %v is not reserved", token)
	}
	if err != nil {
		return "", commonerrors.WrapError(commonerrors.ErrUnavailable, err, "could not look up token")
	}
	return projectCode, nil
}

func (r *Reserver) Close() error {
	return r.client.Close()
}
