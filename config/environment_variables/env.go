package environment_variables

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"menlo.ai/catalog-admin/app/utils/logger"
	"menlo.ai/catalog-admin/config"
)

type EnvironmentVariable struct {
	CATALOG_API_URL    string `default:"https://dummyjson.com"`
	JWT_SECRET         []byte
	SESSION_TTL        time.Duration `default:"24h"`
	HTTP_PORT          int           `default:"8080"`
	ALLOWED_CORS_HOSTS []string
	// Redis configuration, sessions stay in memory when REDIS_URL is empty
	REDIS_URL      string
	REDIS_PASSWORD string
	REDIS_DB       int
}

// LoadFromEnv reads every field from the environment into a copy and swaps it
// in under the package lock, so readers going through Current never see a
// partial reload.
func (ev *EnvironmentVariable) LoadFromEnv() {
	mu.RLock()
	loaded := *ev
	mu.RUnlock()

	v := reflect.ValueOf(&loaded).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			envValue = field.Tag.Get("default")
		}
		if envValue == "" {
			logger.GetLogger().Warnf("Missing SYSENV: %s", envKey)
			continue
		}
		setField(v.Field(i), field, envValue)
	}

	mu.Lock()
	defer mu.Unlock()
	*ev = loaded
	config.EnvReloadedAt = time.Now()
}

// Current returns a copy of the loaded variables. Request paths read through
// it because the cron job reloads the variables while the server runs.
func Current() EnvironmentVariable {
	mu.RLock()
	defer mu.RUnlock()
	return EnvironmentVariables
}

func ReloadedAt() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	return config.EnvReloadedAt
}

func setField(value reflect.Value, field reflect.StructField, envValue string) {
	envKey := field.Name
	if value.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(envValue)
		if err != nil {
			logger.GetLogger().Errorf("Invalid duration value for %s: %s", envKey, envValue)
			return
		}
		value.SetInt(int64(d))
		return
	}
	switch value.Kind() {
	case reflect.String:
		value.SetString(envValue)
	case reflect.Int:
		intV, err := strconv.Atoi(envValue)
		if err != nil {
			logger.GetLogger().Errorf("Invalid int value for %s: %s", envKey, envValue)
		} else {
			value.SetInt(int64(intV))
		}
	case reflect.Bool:
		boolVal, err := strconv.ParseBool(envValue)
		if err != nil {
			logger.GetLogger().Errorf("Invalid boolean value for %s: %s", envKey, envValue)
		} else {
			value.SetBool(boolVal)
		}
	case reflect.Slice:
		if value.Type().Elem().Kind() == reflect.Uint8 {
			value.SetBytes([]byte(envValue))
		} else if value.Type().Elem().Kind() == reflect.String {
			entries := strings.Split(envValue, ",")
			for i := range entries {
				entries[i] = strings.TrimSpace(entries[i])
			}
			value.Set(reflect.ValueOf(entries))
		} else {
			logger.GetLogger().Errorf("Unsupported slice type for %s", envKey)
		}
	default:
		logger.GetLogger().Errorf("Unsupported field type: %s", envKey)
	}
}

// Singleton
var (
	EnvironmentVariables = EnvironmentVariable{}
	mu                   sync.RWMutex
)
