package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Channel identifies one trusted reviewer channel on the video platform.
type Channel struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Config holds all application configuration loaded from environment
// variables, with the trusted-channel allow-list optionally overridden
// from a YAML file.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	HTTPPort string

	YouTubeAPIKey    string
	TranscriptAPIKey string
	TranscriptAPIURL string

	TrustedChannels []Channel

	VideoDelayMs      int
	PhoneDelayMs      int
	MaxVideosPerPhone int
	MaxPhonesPerSync  int
	ReviewsPerPhone   int

	MaxConcurrency  int
	RateLimitMs     int
	MaxRetries      int
	PagesToScrape   int
	ListingsPerPage int

	CSVOutputPath string
	ChromeBin     string
}

// defaultChannels is the built-in trusted reviewer allow-list
// (English-language channels only).
var defaultChannels = []Channel{
	{ID: "UCOhHO2ICt0ti9KAh-QHvttQ", Name: "Mrwhosetheboss"},
	{ID: "UCBJycsmduvYEL83R_U4JriQ", Name: "MKBHD"},
	{ID: "UC7cs6Hdf2JWPV_rRgvg-wSg", Name: "Trakin Tech"},
	{ID: "UCf_suVenvfMZ4JYSbmalKNQ", Name: "Geeky Ranjit"},
	{ID: "UCYSt6V_ta00dS_g52MliaIg", Name: "C4ETech"},
	{ID: "UCDLUxbvomVR-TdBnLXM4p3Q", Name: "Beebom"},
	{ID: "UCxvLs6GdK4HLj4JOoGqvsLg", Name: "TechBar"},
	{ID: "UCdp6GUwjKscp5ST4M4WgIpw", Name: "TechWiser"},
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "smartpick"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "smartpick123"),
		PostgresDB:       getEnv("POSTGRES_DB", "smartpick_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		HTTPPort: getEnv("PORT", "3001"),

		YouTubeAPIKey:    getEnv("YOUTUBE_API_KEY", ""),
		TranscriptAPIKey: getEnv("TRANSCRIPT_API_KEY", ""),
		TranscriptAPIURL: getEnv("TRANSCRIPT_API_URL", "https://transcriptapi.com/api/v2/youtube/transcript"),

		TrustedChannels: defaultChannels,

		VideoDelayMs:      getEnvInt("VIDEO_DELAY_MS", 3000),
		PhoneDelayMs:      getEnvInt("PHONE_DELAY_MS", 5000),
		MaxVideosPerPhone: getEnvInt("MAX_VIDEOS_PER_PHONE", 5),
		MaxPhonesPerSync:  getEnvInt("MAX_PHONES_PER_SYNC", 5),
		ReviewsPerPhone:   getEnvInt("REVIEWS_PER_PHONE", 3),

		MaxConcurrency:  getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:     getEnvInt("RATE_LIMIT_MS", 2000),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		PagesToScrape:   getEnvInt("PAGES_TO_SCRAPE", 2),
		ListingsPerPage: getEnvInt("LISTINGS_PER_PAGE", 24),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/phone_data.csv"),
		ChromeBin:     getEnv("CHROME_BIN", ""),
	}

	if path := getEnv("CHANNELS_CONFIG", ""); path != "" {
		channels, err := loadChannels(path)
		if err != nil {
			log.Printf("[config] Cannot load channels file %s: %v (keeping defaults)", path, err)
		} else if len(channels) > 0 {
			cfg.TrustedChannels = channels
		}
	}

	return cfg
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// TrustedChannelIDs returns the allow-listed channel IDs as a lookup set.
func (c *Config) TrustedChannelIDs() map[string]bool {
	ids := make(map[string]bool, len(c.TrustedChannels))
	for _, ch := range c.TrustedChannels {
		ids[ch.ID] = true
	}
	return ids
}

func loadChannels(path string) ([]Channel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Channels []Channel `yaml:"channels"`
	}
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	return parsed.Channels, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
