package env

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

func setRequiredEnvVars(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_VERSION", "1")
	t.Setenv("APP_REDIS_ADDR", "localhost:6379")
	t.Setenv("APP_JWT_SECRET", "test-secret")
}

func TestGetEnv_IsSingletonAndConcurrentSafe(t *testing.T) {
	setRequiredEnvVars(t)
	goroutine := 100

	wg := sync.WaitGroup{}
	wg.Add(goroutine)

	instances := make(chan *Specification, goroutine)

	for i := 0; i < goroutine; i++ {
		go func() {
			defer wg.Done()
			instances <- GetEnv()
		}()
	}
	wg.Wait()
	close(instances)

	var first *Specification
	for instance := range instances {
		if first == nil {
			first = instance
			continue
		}
		require.Same(t, first, instance)
	}

	resetEnvForTests()
}

func TestGetEnv_SpecificationIsValid(t *testing.T) {
	setRequiredEnvVars(t)
	envObj := GetEnv()
	defer resetEnvForTests()

	assert.Equal(t, 1, envObj.Version, "Version")
	assert.Equal(t, "test", envObj.Env, "Env")
	assert.Equal(t, ":3000", envObj.ServerPort, "Server Port")
	assert.Equal(t, 10*time.Second, envObj.ServerWriteTimeoutInSecond, "Server Write Timeout")
	assert.Equal(t, 10*time.Second, envObj.ServerReadTimeoutInSecond, "Server Read Timeout")
	assert.Equal(t, 1048576, envObj.ServerMaxHeaderBytes, "Server Max Header Bytes")
	assert.Equal(t, "localhost:6379", envObj.RedisAddr, "Redis Addr")
	assert.Equal(t, 0, envObj.RedisDb, "Redis DB")
	assert.Equal(t, "", envObj.RedisPassword, "Redis Password")
	assert.Equal(t, 100, envObj.RedisPoolSize, "Redis Pool Size")
	assert.Equal(t, "mongodb://localhost:27017", envObj.MongoUri, "Mongo URI")
	assert.Equal(t, "mytunes", envObj.MongoDatabase, "Mongo Database")
	assert.Equal(t, "test-secret", envObj.JwtSecret, "JWT Secret")
	assert.Equal(t, 72*time.Hour, envObj.TokenTtl, "Token TTL")
	assert.Equal(t, "./content", envObj.ContentDir, "Content Dir")
	assert.Equal(t, "./config.yaml", envObj.ConfigFile, "Config File Path")
}
