package config

import (
	"github.com/ebsys/gateway/logger"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Env is structure containing env variables
type Env struct {
	APIHost                  string `mapstructure:"API_HOST" validate:"required,url"`
	AppDomain                string `mapstructure:"APP_DOMAIN"`
	AppEnv                   string `mapstructure:"APP_ENV" validate:"required,oneof=local staging production"`
	DevEnv                   string `mapstructure:"DEV_ENV" validate:"required,oneof=DEV PROD TEST"`
	Port                     string `mapstructure:"PORT" validate:"required,numeric"`
	FrontendHostname         string `mapstructure:"FRONTEND_HOSTNAME" validate:"required,hostname"`
	FrontendURL              string `mapstructure:"FRONTEND_URL" validate:"required,url"`
	GoogleClientID           string `mapstructure:"GOOGLE_CLIENT_ID" validate:"required"`
	GoogleClientSecret       string `mapstructure:"GOOGLE_CLIENT_SECRET" validate:"required"`
	GoogleRedirectURL        string `mapstructure:"GOOGLE_REDIRECT_URL" validate:"required,url"`
	RedisRatelimiterUsername string `mapstructure:"REDIS_RATELIMITER_USERNAME"`
	RedisRatelimiterPassword string `mapstructure:"REDIS_RATELIMITER_PASSWORD"`
	RedisRatelimiterHost     string `mapstructure:"REDIS_RATELIMITER_HOST" validate:"required"`
	RedisRatelimiterPort     int    `mapstructure:"REDIS_RATELIMITER_PORT" validate:"required,number"`
	RedisArtifactsURL        string `mapstructure:"REDIS_ARTIFACTS_URL" validate:"omitempty,uri"`
}

// Load is a function that is used to laod the env variables from the file and the enviroment
func (e *Env) Load(path ...string) {
	configPath := "."
	if len(path) > 0 {
		configPath = path[0]
	}

	viper.AddConfigPath(configPath)
	viper.SetConfigFile(configPath + "/.env")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		logger.Error(err)
	}

	err = viper.Unmarshal(&e)
	if err != nil {
		logger.Errorf(err)
	}

	err = validator.New().Struct(e)
	if err != nil {
		logger.Errorf(err)
	}
}

// Secure reports wether cookies issued by the gateway must be limited to secure transport
func (e *Env) Secure() bool {
	return e.AppEnv != "local"
}
