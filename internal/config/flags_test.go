package config

import (
	"flag"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost", addr: NetAddress{Host: "localhost", Port: 8765}, expected: "localhost:8765"},
		{name: "ipv4 loopback", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "ipv6 loopback is bracketed", addr: NetAddress{Host: "::1", Port: 8765}, expected: "[::1]:8765"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		errorMsg     string
		expectedAddr NetAddress
	}{
		{name: "localhost", input: "localhost:8765", expectedAddr: NetAddress{Host: "localhost", Port: 8765}},
		{name: "localhost any case", input: "LocalHost:8765", expectedAddr: NetAddress{Host: "LocalHost", Port: 8765}},
		{name: "ipv4 loopback", input: "127.0.0.1:9090", expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "ipv6 loopback", input: "[::1]:8765", expectedAddr: NetAddress{Host: "::1", Port: 8765}},
		{name: "missing colon", input: "localhost8765", errorMsg: "need address in a form `host:port`"},
		{name: "empty string", input: "", errorMsg: "need address in a form `host:port`"},
		{name: "non-numeric port", input: "localhost:abc", errorMsg: "invalid syntax"},
		{name: "zero port", input: "localhost:0", errorMsg: "1..65535"},
		{name: "port out of range", input: "localhost:70000", errorMsg: "1..65535"},
		{name: "all interfaces", input: "0.0.0.0:8765", errorMsg: "must be loopback"},
		{name: "empty host", input: ":8765", errorMsg: "must be loopback"},
		{name: "lan address", input: "192.168.1.20:8765", errorMsg: "must be loopback"},
		{name: "hostname", input: "pool-pc.local:8765", errorMsg: "must be loopback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)

			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Empty(t, addr.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, *addr)
		})
	}
}

// TestParseFlags tests the ParseFlags function
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-a", "localhost:8080",
				"-d", "/tmp/cue.db",
				"-c", "/path/to/config.json",
				"-owner-player", "Xisco",
				"-log-file", "/tmp/cue.log",
				"-api-url", "https://api.example.com",
				"-raw-url", "https://raw.example.com",
				"-owner", "xisco",
				"-repo", "pool-data",
				"-branch", "data",
				"-token", "ghp_secret",
				"-pull-timeout", "4s",
				"-push-timeout", "8s",
				"-conflict-retries", "3",
				"-sync-interval", "2m",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
				assert.Equal(t, "/tmp/cue.db", cfg.Storage.DB.DSN)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
				assert.Equal(t, "Xisco", cfg.App.OwnerPlayer)
				assert.Equal(t, "/tmp/cue.log", cfg.App.LogFile)
				assert.Equal(t, "https://api.example.com", cfg.Remote.APIURL)
				assert.Equal(t, "https://raw.example.com", cfg.Remote.RawURL)
				assert.Equal(t, "xisco", cfg.Remote.Owner)
				assert.Equal(t, "pool-data", cfg.Remote.Repo)
				assert.Equal(t, "data", cfg.Remote.Branch)
				assert.Equal(t, "ghp_secret", cfg.Remote.Token)
				assert.Equal(t, 4*time.Second, cfg.Remote.PullTimeout)
				assert.Equal(t, 8*time.Second, cfg.Remote.PushTimeout)
				assert.Equal(t, 3, cfg.Remote.ConflictRetries)
				assert.Equal(t, 2*time.Minute, cfg.Workers.SyncInterval)
			},
		},
		{
			name: "config alias flag",
			args: []string{
				"-config", "/path/to/config.json",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "partial flags",
			args: []string{
				"-a", "127.0.0.1:3000",
				"-token", "secret",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "127.0.0.1:3000", cfg.Server.HTTPAddress)
				assert.Equal(t, "secret", cfg.Remote.Token)
				assert.Empty(t, cfg.Remote.Owner)
				assert.Empty(t, cfg.Storage.DB.DSN)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Empty(t, cfg.Server.HTTPAddress)
				assert.Empty(t, cfg.Storage.DB.DSN)
				assert.Empty(t, cfg.JSONFilePath)
				assert.Empty(t, cfg.App.OwnerPlayer)
				assert.Zero(t, cfg.Remote.PullTimeout)
				assert.Zero(t, cfg.Workers.SyncInterval)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flag.CommandLine for each test
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

			// Set os.Args to simulate command line arguments
			oldArgs := os.Args
			os.Args = append([]string{"cmd"}, tt.args...)
			defer func() { os.Args = oldArgs }()

			cfg := ParseFlags()
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

// TestParseFlags_InvalidAddress tests that an invalid -a value is rejected
// by flag parsing instead of reaching the config.
func TestParseFlags_InvalidAddress(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "invalid server address format",
			args: []string{"-a", "invalid"},
		},
		{
			name: "invalid port in server address",
			args: []string{"-a", "localhost:abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("cmd", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			var addr NetAddress
			fs.Var(&addr, "a", "Net address host:port")

			err := fs.Parse(tt.args)

			require.Error(t, err)
			assert.Empty(t, addr.String())
		})
	}
}

// TestNetAddress_SetAndString tests the round-trip of Set and String
func TestNetAddress_SetAndString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"localhost:8080", "localhost:8080"},
		{"127.0.0.1:9090", "127.0.0.1:9090"},
		{"[::1]:8765", "[::1]:8765"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr.String())
		})
	}
}
