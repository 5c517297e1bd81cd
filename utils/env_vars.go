package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type EnvValue interface {
	string | bool | int
}

func parseEnv[T EnvValue](name, raw string) T {
	var out T
	switch ptr := any(&out).(type) {
	case *string:
		*ptr = raw
	case *bool:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			log.Fatalf("environment variable %s is not a valid bool: %q", name, raw)
		}
		*ptr = value
	case *int:
		value, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("environment variable %s is not a valid int: %q", name, raw)
		}
		*ptr = value
	default:
		panic(fmt.Sprintf("unsupported env var type for %s", name))
	}
	return out
}

func GetEnv[T EnvValue](name string, defaultValue T) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return defaultValue
	}
	return parseEnv[T](name, raw)
}

func GetRequiredEnv[T EnvValue](name string) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		log.Fatalf("%s environment variable is required", name)
	}
	return parseEnv[T](name, raw)
}
