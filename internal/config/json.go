package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		OwnerPlayer string `json:"owner_player"`
		LogFile     string `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Remote struct {
		APIURL          string   `json:"api_url"`
		RawURL          string   `json:"raw_url"`
		Owner           string   `json:"owner"`
		Repo            string   `json:"repo"`
		Branch          string   `json:"branch"`
		Token           string   `json:"token"`
		PullTimeout     Duration `json:"pull_timeout"`
		PushTimeout     Duration `json:"push_timeout"`
		ConflictRetries int      `json:"conflict_retries"`
	} `json:"remote,omitempty"`

	Server struct {
		HTTPAddress string `json:"http_address"`
	} `json:"server,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			OwnerPlayer: jsonCfg.App.OwnerPlayer,
			LogFile:     jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Remote: Remote{
			APIURL:          jsonCfg.Remote.APIURL,
			RawURL:          jsonCfg.Remote.RawURL,
			Owner:           jsonCfg.Remote.Owner,
			Repo:            jsonCfg.Remote.Repo,
			Branch:          jsonCfg.Remote.Branch,
			Token:           jsonCfg.Remote.Token,
			PullTimeout:     time.Duration(jsonCfg.Remote.PullTimeout),
			PushTimeout:     time.Duration(jsonCfg.Remote.PushTimeout),
			ConflictRetries: jsonCfg.Remote.ConflictRetries,
		},
		Server: Server{
			HTTPAddress: jsonCfg.Server.HTTPAddress,
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
