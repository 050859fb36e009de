// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestStorePathShape(t *testing.T) {
	got := StorePath("/home/u/.reqcockpit", 7)
	want := filepath.Join("/home/u/.reqcockpit", "projects", "7.sqlite")
	if got != want {
		t.Errorf("StorePath = %q, want %q", got, want)
	}
}

func TestStorePathDeterministic(t *testing.T) {
	first := StorePath("/data", 42)
	second := StorePath("/data", 42)
	if first != second {
		t.Errorf("StorePath not deterministic: %q != %q", first, second)
	}
}

func TestStorePathDistinguishesProjects(t *testing.T) {
	if StorePath("/data", 1) == StorePath("/data", 2) {
		t.Error("distinct project IDs mapped to the same store path")
	}
}

func TestStoreURL(t *testing.T) {
	got := StoreURL("/home/u/.reqcockpit", 3)
	want := "sqlite:////home/u/.reqcockpit/projects/3.sqlite"
	if got != want {
		t.Errorf("StoreURL = %q, want %q", got, want)
	}
	if !strings.HasPrefix(got, "sqlite:///") {
		t.Errorf("StoreURL %q missing connection string scheme", got)
	}
}

func TestParseStoreURL(t *testing.T) {
	path, err := ParseStoreURL(StoreURL("/home/u/.reqcockpit", 3))
	if err != nil {
		t.Fatalf("ParseStoreURL: %v", err)
	}
	if want := StorePath("/home/u/.reqcockpit", 3); path != want {
		t.Errorf("ParseStoreURL = %q, want %q", path, want)
	}
}

func TestParseStoreURLMalformed(t *testing.T) {
	for _, url := range []string{"", "sqlite:///", "/plain/path.sqlite", "postgres://host/db"} {
		if _, err := ParseStoreURL(url); err == nil {
			t.Errorf("ParseStoreURL(%q) = nil error, want malformed", url)
		}
	}
}

func TestRecentProjectsPath(t *testing.T) {
	got := RecentProjectsPath("/data")
	want := filepath.Join("/data", "recent_projects.json")
	if got != want {
		t.Errorf("RecentProjectsPath = %q, want %q", got, want)
	}
}

func TestDataRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	root, err := DataRoot()
	if err != nil {
		t.Fatalf("DataRoot: %v", err)
	}
	if want := filepath.Join(home, ".reqcockpit"); root != want {
		t.Errorf("DataRoot = %q, want %q", root, want)
	}
}

func TestDataRootUnresolvable(t *testing.T) {
	t.Setenv("HOME", "")

	_, err := DataRoot()
	if err == nil {
		t.Fatal("DataRoot should fail with no home directory")
	}

	var addrErr *AddressingError
	if !errors.As(err, &addrErr) {
		t.Fatalf("error type = %T, want *AddressingError", err)
	}
	if addrErr.Location != "application data root" {
		t.Errorf("Location = %q, want %q", addrErr.Location, "application data root")
	}
}

func TestAddressingErrorUnwrap(t *testing.T) {
	cause := errors.New("no home")
	err := fmt.Errorf("looking up project: %w", &AddressingError{Location: "data root", Err: cause})

	var addrErr *AddressingError
	if !errors.As(err, &addrErr) {
		t.Fatal("errors.As failed through wrapping")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is failed to reach the cause")
	}
}

func TestAddressingErrorMessage(t *testing.T) {
	withCause := &AddressingError{Location: "data root", Err: errors.New("$HOME is not defined")}
	if msg := withCause.Error(); !strings.Contains(msg, "data root") || !strings.Contains(msg, "$HOME") {
		t.Errorf("message %q missing location or cause", msg)
	}

	bare := &AddressingError{Location: "store path"}
	if msg := bare.Error(); !strings.Contains(msg, "store path") {
		t.Errorf("message %q missing location", msg)
	}
}
