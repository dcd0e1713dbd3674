package cache

import "fmt"

type EntityType string

const (
	EntityAccount EntityType = "account"
)

type KeyType string

const (
	KeyExists KeyType = "exists"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}
