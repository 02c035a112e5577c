package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Addr          string        `yaml:"addr"`
	LogLevel      string        `yaml:"log_level"`
	LogJSON       bool          `yaml:"log_json"`
	SecureCookies bool          `yaml:"secure_cookies"`
	SessionTTL    time.Duration `yaml:"session_ttl"`

	Forms Forms `yaml:"forms"`
}

// Forms holds the field limits shared by the validation engine and
// the templates (maxlength attributes).
type Forms struct {
	UsernameMinLen int `yaml:"username_min_len"`
	UsernameMaxLen int `yaml:"username_max_len"`
	PasswordMinLen int `yaml:"password_min_len"`
	TitleMaxLen    int `yaml:"title_max_len"`
	ContentMaxLen  int `yaml:"content_max_len"`
}

type Private struct {
	Pg         Pg     `yaml:"pg"`
	SessionKey string `yaml:"session_key"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (c *Config) SessionKey() string {
	return c.Private.SessionKey
}

func (c *Config) SessionTTL() time.Duration {
	return c.Public.SessionTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	f := &c.Public.Forms
	if f.UsernameMinLen == 0 {
		f.UsernameMinLen = 2
	}
	if f.UsernameMaxLen == 0 {
		f.UsernameMaxLen = 20
	}
	if f.PasswordMinLen == 0 {
		f.PasswordMinLen = 8
	}
	if f.TitleMaxLen == 0 {
		f.TitleMaxLen = 100
	}
	if f.ContentMaxLen == 0 {
		f.ContentMaxLen = 4000
	}
	if c.Public.Addr == "" {
		c.Public.Addr = ":8080"
	}
	if c.Public.SessionTTL == 0 {
		c.Public.SessionTTL = 24 * time.Hour
	}
}
