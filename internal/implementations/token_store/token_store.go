package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	e "userauth/internal/core/domain/errors"
	"userauth/internal/core/domain/user"

	"github.com/go-redis/redis/v9"
)

const userKeyPrefix = "auth:user:"
const tokenKeyPrefix = "auth:token:"

// Both directions of the mapping are written in one script so concurrent
// logins for the same user never observe two different tokens.
var getOrCreateScript = redis.NewScript(`
local existing = redis.call("GET", KEYS[1])
if existing then
    return existing
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
return ARGV[1]
`)

var deleteScript = redis.NewScript(`
local userID = redis.call("GET", KEYS[1])
if not userID then
    return false
end
redis.call("DEL", KEYS[1])
redis.call("DEL", ARGV[1] .. userID)
return userID
`)

// Redis keeps the auth token mapping in Redis; users themselves still live
// in the user repository.
type Redis struct {
	redisClient    *redis.Client
	userRepository user.UserRepository
}

func NewRedis(redisClient *redis.Client, userRepository user.UserRepository) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &Redis{redisClient: redisClient, userRepository: userRepository}
}

func (r *Redis) GetOrCreate(ctx context.Context, input user.CreateTokenInput) (token user.AuthToken, err error) {
	rawToken, err := getOrCreateScript.Run(
		ctx,
		r.redisClient,
		[]string{userKey(input.UserID), tokenKey(input.Token)},
		string(input.Token),
		int64(input.UserID),
	).Text()
	if err != nil {
		return token, err
	}
	return user.AuthToken(rawToken), nil
}

func (r *Redis) GetUserByToken(ctx context.Context, token user.AuthToken) (u user.User, err error) {
	rawUserID, err := r.redisClient.Get(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		return u, err
	}
	return r.userRepository.GetByID(ctx, user.ID(userID))
}

func (r *Redis) Delete(ctx context.Context, token user.AuthToken) (userID user.ID, err error) {
	rawUserID, err := deleteScript.Run(
		ctx,
		r.redisClient,
		[]string{tokenKey(token)},
		userKeyPrefix,
	).Text()
	if errors.Is(err, redis.Nil) {
		return userID, user.ErrTokenDoesNotExist
	}
	if err != nil {
		return userID, err
	}
	rawID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		return userID, err
	}
	return user.ID(rawID), nil
}

func userKey(id user.ID) string {
	return fmt.Sprintf("%s%d", userKeyPrefix, id)
}

func tokenKey(token user.AuthToken) string {
	return tokenKeyPrefix + string(token)
}
