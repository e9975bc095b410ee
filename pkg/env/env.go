package env

import (
	"github.com/kelseyhightower/envconfig"
	"log"
	"log/slog"
	"sync"
	"time"
)

// Specification is the process-wide environment surface. Values are read once
// from APP_* variables and shared by every component.
type Specification struct {
	Version int
	Env     string `default:"production"`

	ServerPort                 string        `default:":3000" split_words:"true"`
	ServerReadTimeoutInSecond  time.Duration `default:"10s" split_words:"true"`
	ServerWriteTimeoutInSecond time.Duration `default:"10s" split_words:"true"`
	ServerMaxHeaderBytes       int           `default:"1048576" split_words:"true"`

	RedisAddr     string `required:"true" split_words:"true"`
	RedisPassword string `default:"" split_words:"true"`
	RedisDb       int    `default:"0" split_words:"true"`
	RedisPoolSize int    `default:"100" split_words:"true"`

	MongoUri      string `default:"mongodb://localhost:27017" split_words:"true"`
	MongoDatabase string `default:"mytunes" split_words:"true"`

	JwtSecret string        `required:"true" split_words:"true"`
	TokenTtl  time.Duration `default:"72h" split_words:"true"`

	ContentDir string `default:"./content" split_words:"true"`
	ConfigFile string `default:"./config.yaml" split_words:"true"`
}

var (
	once        sync.Once
	envInstance Specification
)

func GetEnv() *Specification {
	once.Do(func() {
		slog.Info("initializing env...")
		err := envconfig.Process("app", &envInstance)
		if err != nil {
			log.Fatal(err.Error())
		}
	})

	return &envInstance
}

// resetEnvForTests drops the singleton so the next GetEnv re-reads the
// environment. Test helper only.
func resetEnvForTests() {
	once = sync.Once{}
	envInstance = Specification{}
}
