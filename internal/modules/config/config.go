package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"

	dydxAPIKeyENV        = "DYDX_API_KEY"
	dydxAPISecretENV     = "DYDX_API_SECRET"
	dydxAPIPassphraseENV = "DYDX_API_PASSPHRASE"
	dydxStarkKeyENV      = "DYDX_STARK_PRIVATE_KEY"
	dydxEthAddressENV    = "DYDX_ETHEREUM_ADDRESS"
)

// Config ...
type Config struct {
	Dydx struct {
		Host            string `yaml:"host"`
		WSHost          string `yaml:"ws_host"`
		EthereumAddress string `yaml:"ethereum_address"`
		APIKey          string `yaml:"api_key"`
		APISecret       string `yaml:"api_secret"`
		APIPassphrase   string `yaml:"api_passphrase"`
		StarkPrivateKey string `yaml:"stark_private_key"`
	} `yaml:"dydx"`
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB     string `yaml:"db_dsn"`
	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	HistoryFile string `yaml:"history_file"`
	PairsFile   string `yaml:"pairs_file"` // необязательный оверрайд таблицы пар

	// Параметры часового цикла. Дефолты повторяют исходную стратегию,
	// менять их в проде незачем.
	HourPollInterval time.Duration
	Cooldown         time.Duration
	OrderExpiration  time.Duration

	// Ценовая политика ордеров
	TickOffset int64  // лимитная цена = best ± TickOffset*tickSize
	LimitFee   string // максимальная комиссия, как строка для API

	// Делитель аллокации: balance / (N * AllocationBuffer),
	// ~1.25% запаса на комиссии и проскальзывание.
	AllocationBuffer string
}

func NewConfig() (*Config, error) {

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	config := Config{
		HourPollInterval: durationFromEnv("HOUR_POLL_INTERVAL", "30s"),
		Cooldown:         durationFromEnv("COOLDOWN_AFTER_CLOSE", "45s"),
		OrderExpiration:  durationFromEnv("ORDER_EXPIRATION", "120s"),

		TickOffset:       int64FromEnv("TICK_OFFSET", 20),
		LimitFee:         getenvDefault("LIMIT_FEE", "0.1"),
		AllocationBuffer: getenvDefault("ALLOCATION_BUFFER", "1.0125"),
	}
	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	if config.Dydx.Host == "" {
		config.Dydx.Host = "https://api.dydx.exchange"
	}
	if config.Dydx.WSHost == "" {
		config.Dydx.WSHost = "wss://api.dydx.exchange/v3/ws"
	}
	if config.HistoryFile == "" {
		config.HistoryFile = "trade_history.txt"
	}

	token := os.Getenv(tokenTelegramENV)
	if token != "" {
		config.Telegram.Token = token
	}

	dsn := os.Getenv(databaseDSN)
	if dsn != "" {
		config.DB = dsn
	}

	// креды dYdX из окружения приоритетнее файла
	if v := os.Getenv(dydxAPIKeyENV); v != "" {
		config.Dydx.APIKey = v
	}
	if v := os.Getenv(dydxAPISecretENV); v != "" {
		config.Dydx.APISecret = v
	}
	if v := os.Getenv(dydxAPIPassphraseENV); v != "" {
		config.Dydx.APIPassphrase = v
	}
	if v := os.Getenv(dydxStarkKeyENV); v != "" {
		config.Dydx.StarkPrivateKey = v
	}
	if v := os.Getenv(dydxEthAddressENV); v != "" {
		config.Dydx.EthereumAddress = v
	}

	return &config, nil
}

func getenvRequired(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("env %s is required", key))
	}
	return v
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func int64FromEnv(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
