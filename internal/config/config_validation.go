// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "net"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Structural checks live on the client view ([ClientConfig.validate]); the
// merged config itself has no cross-field rules.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	r := cfg.Remote
	if r.APIURL == "" || r.RawURL == "" || r.PullTimeout <= 0 || r.PushTimeout <= 0 || r.ConflictRetries < 0 {
		return ErrInvalidRemoteConfigs
	}

	// credentials are all-or-nothing
	set := 0
	for _, v := range []string{r.Owner, r.Repo, r.Token} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return ErrIncompleteCredentials
	}

	if host, _, err := net.SplitHostPort(cfg.Server.HTTPAddress); err != nil || !isLoopbackHost(host) {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
