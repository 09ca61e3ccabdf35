package app

import "os"

type Config struct {
	Port          string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	DBSSLMode     string
	RedisAddr     string
	KafkaBroker   string
	UploadDir     string
	UploadBaseURL string
}

func LoadConfig() Config {
	return Config{
		Port:          getEnv("PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "hr_management"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:   getEnv("KAFKA_BROKER", "localhost:9092"),
		UploadDir:     getEnv("UPLOAD_DIR", "./storage/uploads"),
		UploadBaseURL: getEnv("UPLOAD_BASE_URL", "/storage"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
