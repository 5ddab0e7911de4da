// Package redis wraps go-redis as a small string key-value client with a key
// prefix and optional TTL. The credential package builds its Redis store on it.
package redis
