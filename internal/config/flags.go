package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a local API address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-owner-player name seeded into a new players list
//	-log-file client log file path
//	-api-url remote contents API base URL
//	-raw-url remote raw content base URL
//	-owner remote repository owner
//	-repo remote repository name
//	-branch remote branch
//	-token remote bearer token
//	-pull-timeout pull timeout (e.g., "10s")
//	-push-timeout push timeout (e.g., "10s")
//	-conflict-retries retries after a version conflict
//	-sync-interval periodic sync interval (e.g., "5m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var ownerPlayer, logFile string
	var apiURL, rawURL string
	var owner, repo, branch, token string
	var pullTimeout, pushTimeout time.Duration
	var conflictRetries int
	var syncInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&ownerPlayer, "owner-player", "", "Player name seeded into a new matches document")
	flag.StringVar(&logFile, "log-file", "", "Client log file path")
	flag.StringVar(&apiURL, "api-url", "", "Remote contents API base URL")
	flag.StringVar(&rawURL, "raw-url", "", "Remote raw content base URL")
	flag.StringVar(&owner, "owner", "", "Remote repository owner")
	flag.StringVar(&repo, "repo", "", "Remote repository name")
	flag.StringVar(&branch, "branch", "", "Remote branch")
	flag.StringVar(&token, "token", "", "Remote bearer token")
	flag.DurationVar(&pullTimeout, "pull-timeout", 0, "Pull timeout (e.g., 10s)")
	flag.DurationVar(&pushTimeout, "push-timeout", 0, "Push timeout (e.g., 10s)")
	flag.IntVar(&conflictRetries, "conflict-retries", 0, "Retries after a version conflict")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g., 5m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			OwnerPlayer: ownerPlayer,
			LogFile:     logFile,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Remote: Remote{
			APIURL:          apiURL,
			RawURL:          rawURL,
			Owner:           owner,
			Repo:            repo,
			Branch:          branch,
			Token:           token,
			PullTimeout:     pullTimeout,
			PushTimeout:     pushTimeout,
			ConflictRetries: conflictRetries,
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Workers:      Workers{SyncInterval: syncInterval},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns the host:port form of a, bracketing IPv6 hosts. An unset
// address is "".
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port into a. The local API only listens on loopback, so
// host must be "localhost" or a loopback IP, and port must be in 1..65535.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be within 1..65535")
	}

	if !isLoopbackHost(host) {
		return errors.New("local API address must be loopback")
	}

	a.Host = host
	a.Port = port
	return nil
}

func isLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
