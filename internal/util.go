package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

type Secrets struct {
	CohereApiKey  string `json:"cohereApiKey"`
	CohereBaseUrl string `json:"cohereBaseUrl"`

	InvestEaseBaseUrl string `json:"investEaseBaseUrl"`

	// per-call budget for upstream requests, in seconds. zero means the
	// default of 5.
	UpstreamTimeoutSeconds int `json:"upstreamTimeoutSeconds"`

	SqlitePath string `json:"sqlitePath"`
}

func (s Secrets) UpstreamTimeout() time.Duration {
	if s.UpstreamTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.UpstreamTimeoutSeconds) * time.Second
}

func LoadSecrets() (*Secrets, error) {
	secretsFile := "/go/src/app/secrets.json"
	if os.Getenv("STOCKSWAP_ENV") == "dev" {
		secretsFile = "secrets-dev.json"
	} else if os.Getenv("STOCKSWAP_ENV") == "test" {
		secretsFile = "secrets-test.json"
	}
	f, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open secrets.json: %w", err)
	}

	secrets := Secrets{}
	err = json.Unmarshal(f, &secrets)
	if err != nil {
		return nil, err
	}

	if secrets.SqlitePath == "" {
		secrets.SqlitePath = "stockswap.db"
	}

	return &secrets, nil
}
