package utils

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/mmdatafocus/practice_backend/config"
)

func GetCacheLifespan() time.Duration {
	lifespan, err := strconv.Atoi(os.Getenv("CACHE_LIFESPAN"))
	if err != nil {
		lifespan = 1
	}
	return time.Duration(lifespan) * time.Hour
}

/* generic functions */

func GetTypeName[T any]() string {
	var v T
	typeOfT := reflect.TypeOf(v)
	return typeOfT.Name()
}

/* Redis */

// store instance, obj should be a pointer
func StoreRedis[T any](obj any, id string) error {
	key := GetTypeName[T]() + ":" + id
	return config.SetRedisObject(key, &obj, GetCacheLifespan())
}

// retrieve instance; nil result and nil error means cache miss
func RetrieveRedis[T any](id string) (*T, error) {
	key := GetTypeName[T]() + ":" + id
	var obj T
	exists, err := config.GetRedisObject(key, &obj)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return &obj, nil
}

// drop a cached instance after a mutation
func InvalidateRedis[T any](id string) error {
	key := GetTypeName[T]() + ":" + id
	return config.RemoveRedisKey(key)
}

// store a list result keyed by an arbitrary scope (e.g. portfolio code)
func StoreRedisList[T any](obj any, scope string) error {
	key := fmt.Sprintf("%sList:%s", GetTypeName[T](), scope)
	return config.SetRedisObject(key, &obj, GetCacheLifespan())
}

func RetrieveRedisList[T any](scope string) ([]*T, error) {
	key := fmt.Sprintf("%sList:%s", GetTypeName[T](), scope)
	var list []*T
	exists, err := config.GetRedisObject(key, &list)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return list, nil
}

func InvalidateRedisList[T any](scope string) error {
	key := fmt.Sprintf("%sList:%s", GetTypeName[T](), scope)
	return config.RemoveRedisKey(key)
}
