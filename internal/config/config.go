package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Port            string
	DBDSN           string
	LogFile         string
	RepriceInterval time.Duration
	KafkaBrokers    string
	KafkaTopic      string
	SMTPAddr        string
	SMTPFrom        string
	TemplatesDir    string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "shopnest.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./shopnest.log"
	}
	interval := 12 * time.Hour
	if v := os.Getenv("REPRICE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			interval = d
		} else {
			log.Printf("[warn] bad REPRICE_INTERVAL %q, using %s", v, interval)
		}
	}
	tmpl := os.Getenv("TEMPLATES_DIR")
	if tmpl == "" {
		tmpl = "./web/templates"
	}

	cfg := Config{
		Port:            port,
		DBDSN:           dsn,
		LogFile:         logFile,
		RepriceInterval: interval,
		KafkaBrokers:    os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:      os.Getenv("KAFKA_TOPIC"),
		SMTPAddr:        os.Getenv("SMTP_ADDR"),
		SMTPFrom:        os.Getenv("SMTP_FROM"),
		TemplatesDir:    tmpl,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s REPRICE_INTERVAL=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.RepriceInterval)
	return cfg
}
