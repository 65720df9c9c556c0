// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// BuildInfoNotAvailable replaces build metadata the linker did not set.
const BuildInfoNotAvailable = "N/A"

// AppBuildInfo is the linker-injected metadata of a Lumina binary. The server
// prints it at startup and falls back to its version for GET /version; the
// terminal client shows it on the build info screen.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo replaces every empty value with [BuildInfoNotAvailable].
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: orNotAvailable(version),
		date:    orNotAvailable(date),
		commit:  orNotAvailable(commit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.version }
func (a AppBuildInfo) BuildDate() string    { return a.date }
func (a AppBuildInfo) BuildCommit() string  { return a.commit }

// HasVersion reports whether the binary was built with a version.
func (a AppBuildInfo) HasVersion() bool {
	return a.version != "" && a.version != BuildInfoNotAvailable
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("lumina %s (commit %s, built %s)", a.version, a.commit, a.date)
}

func orNotAvailable(v string) string {
	if v == "" {
		return BuildInfoNotAvailable
	}
	return v
}
