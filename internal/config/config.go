package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port              string
	DatasetPath       string
	SessionTTLMinutes int
	Workers           int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// Defaults suit the local docker compose setup
	env := Config{
		Port:              "9446",
		DatasetPath:       "data/members.json",
		SessionTTLMinutes: 60,
		Workers:           4,
	}

	envPort := os.Getenv("KIOSK_PORT")
	envDatasetPath := os.Getenv("KIOSK_DATASET")
	envSessionTTL := os.Getenv("KIOSK_SESSION_TTL_MINUTES")
	envWorkers := os.Getenv("KIOSK_WORKERS")

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if len(envDatasetPath) != 0 {
		env.DatasetPath = envDatasetPath
	}

	if len(envSessionTTL) != 0 {
		ttl, err := strconv.Atoi(envSessionTTL)
		if err != nil {
			return nil, err
		}
		env.SessionTTLMinutes = ttl
	}

	if len(envWorkers) != 0 {
		workers, err := strconv.Atoi(envWorkers)
		if err != nil {
			return nil, err
		}
		env.Workers = workers
	}

	return &env, nil
}
