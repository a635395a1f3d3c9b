package redis

import "fmt"

// Key prefix for all game-related data
const keyPrefix = "planetgame"

// identityKey returns the Redis key for an Identity
func identityKey(name string) string {
	return fmt.Sprintf("%s:identity:%s", keyPrefix, name)
}

// tokenIndexKey returns the Redis key for the session token -> name index
func tokenIndexKey(token string) string {
	return fmt.Sprintf("%s:idx:token:%s", keyPrefix, token)
}

// identitySetKey returns the Redis key for the SET of registered names
func identitySetKey() string {
	return fmt.Sprintf("%s:identities", keyPrefix)
}
