package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Service Service `yaml:"service"`
	Auth    Auth    `yaml:"auth"`
	Cache   Cache   `yaml:"cache"`
}

type Service struct {
	Host        string `yaml:"host"`
	FirehoseURL string `yaml:"firehoseUrl"`
}

type Auth struct {
	Identifier  string `yaml:"identifier"`
	AppPassword string `yaml:"appPassword"`
}

type Cache struct {
	Backend       string `yaml:"backend"` // memory, redis, memcached
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Service.Host == "" {
		config.Service.Host = "https://bsky.social"
	}
	if config.Service.FirehoseURL == "" {
		config.Service.FirehoseURL = "wss://jetstream1.us-east.bsky.network/subscribe"
	}

	return config, nil
}
