package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging        LoggingConfig `yaml:"logging"`
	Server         ServerConfig  `yaml:"server"`
	MongoURI       string        `yaml:"mongo_uri"`
	MongoDBName    string        `yaml:"mongo_db_name"`
	GeminiModel    string        `yaml:"gemini_model"`
	Chat           ChatConfig    `yaml:"chat"`
	ImageOutputDir string        `yaml:"image_output_dir"`

	// API keys are loaded from the environment, not from config.yaml.
	GeminiApiKey    string `yaml:"-"`
	TavilyApiKey    string `yaml:"-"`
	StabilityApiKey string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// ChatConfig bounds the conversation memory handed to the completion model.
type ChatConfig struct {
	// HistoryWindow is the maximum number of past exchanges included as
	// model context. 0 or less means unbounded.
	HistoryWindow int `yaml:"history_window"`

	// SessionTTLHours is the age after which a session is superseded and
	// its in-process buffer evicted. 0 or less falls back to 24.
	SessionTTLHours int `yaml:"session_ttl_hours"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	c.GeminiApiKey = os.Getenv("GEMINI_API_KEY")
	c.TavilyApiKey = os.Getenv("TAVILY_API_KEY")
	c.StabilityApiKey = os.Getenv("STABILITY_API_KEY")

	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
