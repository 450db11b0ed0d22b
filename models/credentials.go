// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DefaultBranch is the remote branch used when none is configured.
const DefaultBranch = "main"

// Credentials identify the remote repository and authorise writes to it.
// The JSON layout matches the cached credential entry of the Local Store,
// which is why the owner is serialised as "username".
type Credentials struct {
	// Owner is the account owning the remote repository.
	Owner string `json:"username"`

	// Repo is the repository name.
	Repo string `json:"repo"`

	// Token is an opaque bearer token.
	Token string `json:"token"`

	// Branch defaults to [DefaultBranch] when empty.
	Branch string `json:"branch,omitempty"`
}

// Configured reports whether all fields required to reach the remote are
// present. Sync operations are no-ops until it returns true.
func (c Credentials) Configured() bool {
	return c.Owner != "" && c.Repo != "" && c.Token != ""
}

// BranchOrDefault returns Branch, or [DefaultBranch] when it is empty.
func (c Credentials) BranchOrDefault() string {
	if c.Branch == "" {
		return DefaultBranch
	}
	return c.Branch
}

// Redacted returns a copy safe to log or return to callers.
func (c Credentials) Redacted() Credentials {
	if c.Token != "" {
		c.Token = "***"
	}
	return c
}
