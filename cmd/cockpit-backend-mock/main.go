// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Cockpit-backend-mock is a drop-in replacement for the Python data
// backend in development and integration setups. Point paths.python at
// this binary and it answers the backend command contract without a
// Python installation: argv in, stdout/stderr/exit status out, zero
// code changes in the bridge under test.
//
// Because it stands in for the interpreter, the first argument is the
// configured entry-point script; the mock ignores its content, but the
// bridge locates the entry point before spawning, so the file must
// exist. An empty paths.backend file is enough.
//
// The mock answers all five backend commands:
//   - import_master_spec: counts the non-blank lines of the document
//     and records them as the project's requirements
//   - import_supplier_feedback: counts the non-blank lines and records
//     them for the iteration and supplier
//   - get_cockpit_data: emits a JSON coverage summary built from the
//     recorded imports
//   - list_recent_projects: emits the recent projects registry
//   - create_project: allocates the next project ID, creates its
//     store, and registers it most-recent-first
//
// Store files are small JSON documents despite the .sqlite suffix the
// store URL carries; nothing but the mock reads them. Two environment
// variables steer failure injection:
//   - COCKPIT_MOCK_FAIL: when set, every command fails with the
//     variable's value on stderr
//   - COCKPIT_MOCK_SLEEP_MS: delay before answering, for exercising
//     invocation timeouts
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/reqcockpit/reqcockpit/lib/backend"
	"github.com/reqcockpit/reqcockpit/lib/project"
	"github.com/reqcockpit/reqcockpit/lib/version"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes one backend command. Exit code 0 is success, 1 an
// operational failure (message on stderr), 2 a usage fault.
func run(argv []string, stdout, stderr io.Writer) int {
	if len(argv) >= 2 && argv[1] == "--version" {
		fmt.Fprintf(stdout, "cockpit-backend-mock %s\n", version.Info())
		return 0
	}
	if len(argv) < 3 {
		fmt.Fprintln(stderr, "usage: cockpit-backend-mock <entry-point> <command> [args...]")
		return 2
	}

	if delay := os.Getenv("COCKPIT_MOCK_SLEEP_MS"); delay != "" {
		ms, err := strconv.Atoi(delay)
		if err != nil {
			fmt.Fprintf(stderr, "COCKPIT_MOCK_SLEEP_MS %q is not a number\n", delay)
			return 1
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
	if message := os.Getenv("COCKPIT_MOCK_FAIL"); message != "" {
		fmt.Fprintln(stderr, message)
		return 1
	}

	// argv[1] is the entry-point script the bridge was configured
	// with; an interpreter stand-in has no use for it.
	command, args := argv[2], argv[3:]

	output, err := dispatch(command, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		var usage *usageError
		if errors.As(err, &usage) {
			return 2
		}
		return 1
	}

	// The real backend prints its reply; the trailing newline is part
	// of what callers observe, so keep it.
	fmt.Fprintln(stdout, output)
	return 0
}

func dispatch(command string, args []string) (string, error) {
	switch command {
	case backend.CommandImportMasterSpec:
		return importMasterSpec(args)
	case backend.CommandImportSupplierFeedback:
		return importSupplierFeedback(args)
	case backend.CommandGetCockpitData:
		return getCockpitData(args)
	case backend.CommandListRecentProjects:
		return listRecentProjects(args)
	case backend.CommandCreateProject:
		return createProject(args)
	default:
		return "", &usageError{message: fmt.Sprintf("unknown command %q", command)}
	}
}

// usageError marks faults in how the mock was called, reported with
// exit code 2 like an argparse-based backend would.
type usageError struct {
	message string
}

func (e *usageError) Error() string { return e.message }

// --- Store documents ---

// mockStore is the JSON document behind a project's store URL.
type mockStore struct {
	ProjectID    int             `json:"project_id"`
	Requirements int             `json:"requirements"`
	MasterFile   string          `json:"master_file,omitempty"`
	Iterations   []mockIteration `json:"iterations,omitempty"`
}

// mockIteration records feedback imports for one iteration. Its
// position in the store's slice defines the numeric row identifier
// get_cockpit_data addresses it by: the first iteration is 1.
type mockIteration struct {
	ID       string         `json:"id"`
	Feedback map[string]int `json:"feedback,omitempty"`
}

// registryEntry is one project in the recent projects registry,
// ordered most-recent-first.
type registryEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// maxRecentProjects caps the registry length.
const maxRecentProjects = 10

// --- Commands ---

func importMasterSpec(args []string) (string, error) {
	if len(args) != 3 {
		return "", &usageError{message: "import_master_spec wants <store-url> <project-id> <file>"}
	}
	storePath, err := project.ParseStoreURL(args[0])
	if err != nil {
		return "", &usageError{message: err.Error()}
	}
	projectID, err := strconv.Atoi(args[1])
	if err != nil {
		return "", &usageError{message: fmt.Sprintf("project identifier %q is not a number", args[1])}
	}

	count, err := countImportableLines(args[2])
	if err != nil {
		return "", err
	}

	// A master import into a project without a store creates the
	// store; re-imports replace the requirement baseline but keep the
	// iterations.
	store, err := readStore(storePath)
	if os.IsNotExist(err) {
		store = &mockStore{ProjectID: projectID}
	} else if err != nil {
		return "", err
	}
	store.Requirements = count
	store.MasterFile = args[2]
	if err := writeStore(storePath, store); err != nil {
		return "", err
	}

	return strconv.Itoa(count), nil
}

func importSupplierFeedback(args []string) (string, error) {
	if len(args) != 5 {
		return "", &usageError{message: "import_supplier_feedback wants <store-url> <project-id> <iteration> <supplier> <file>"}
	}
	storePath, err := project.ParseStoreURL(args[0])
	if err != nil {
		return "", &usageError{message: err.Error()}
	}
	iterationID, supplierName := args[2], args[3]

	count, err := countImportableLines(args[4])
	if err != nil {
		return "", err
	}

	// Feedback lands in an existing project: without a master import
	// there is nothing to give feedback on.
	store, err := readStore(storePath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("project store not found: %s", storePath)
	} else if err != nil {
		return "", err
	}

	iteration := store.iteration(iterationID)
	if iteration.Feedback == nil {
		iteration.Feedback = make(map[string]int)
	}
	// A re-import replaces the supplier's previous rows for this
	// iteration, mirroring the real backend's delete-and-insert.
	iteration.Feedback[supplierName] = count

	if err := writeStore(storePath, store); err != nil {
		return "", err
	}
	return strconv.Itoa(count), nil
}

func getCockpitData(args []string) (string, error) {
	if len(args) != 3 {
		return "", &usageError{message: "get_cockpit_data wants <store-url> <project-id> <iteration-id>"}
	}
	storePath, err := project.ParseStoreURL(args[0])
	if err != nil {
		return "", &usageError{message: err.Error()}
	}
	iterationRow, err := strconv.Atoi(args[2])
	if err != nil {
		return "", &usageError{message: fmt.Sprintf("iteration identifier %q is not a number", args[2])}
	}

	store, err := readStore(storePath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("project store not found: %s", storePath)
	} else if err != nil {
		return "", err
	}

	if iterationRow < 1 || iterationRow > len(store.Iterations) {
		return "", fmt.Errorf("iteration %d not found (store has %d)", iterationRow, len(store.Iterations))
	}
	iteration := store.Iterations[iterationRow-1]

	covered := 0
	for _, rows := range iteration.Feedback {
		covered += rows
	}
	if covered > store.Requirements {
		covered = store.Requirements
	}

	payload := struct {
		ProjectID    int            `json:"project_id"`
		IterationID  int            `json:"iteration_id"`
		Iteration    string         `json:"iteration"`
		Requirements int            `json:"requirements"`
		Feedback     map[string]int `json:"feedback"`
		Covered      int            `json:"covered"`
	}{
		ProjectID:    store.ProjectID,
		IterationID:  iterationRow,
		Iteration:    iteration.ID,
		Requirements: store.Requirements,
		Feedback:     iteration.Feedback,
		Covered:      covered,
	}
	return marshalReply(payload)
}

func listRecentProjects(args []string) (string, error) {
	if len(args) != 1 {
		return "", &usageError{message: "list_recent_projects wants <data-root>"}
	}
	entries, err := readRegistry(args[0])
	if err != nil {
		return "", err
	}
	if entries == nil {
		entries = []registryEntry{}
	}
	return marshalReply(entries)
}

func createProject(args []string) (string, error) {
	if len(args) != 3 {
		return "", &usageError{message: "create_project wants <data-root> <name> <path>"}
	}
	dataRoot, name, path := args[0], args[1], args[2]

	entries, err := readRegistry(dataRoot)
	if err != nil {
		return "", err
	}

	id := 1
	for _, entry := range entries {
		if entry.ID >= id {
			id = entry.ID + 1
		}
	}

	storePath := project.StorePath(dataRoot, id)
	if _, err := os.Stat(storePath); err == nil {
		return "", fmt.Errorf("project store already exists: %s", storePath)
	}
	if err := writeStore(storePath, &mockStore{ProjectID: id}); err != nil {
		return "", err
	}

	entry := registryEntry{ID: id, Name: name, Path: path}
	if err := writeRegistry(dataRoot, touchRegistry(entries, entry)); err != nil {
		return "", err
	}
	return marshalReply(entry)
}

// --- Store and registry plumbing ---

// iteration returns the store's iteration with the given display
// identifier, appending a new one when it does not exist yet.
func (s *mockStore) iteration(id string) *mockIteration {
	for i := range s.Iterations {
		if s.Iterations[i].ID == id {
			return &s.Iterations[i]
		}
	}
	s.Iterations = append(s.Iterations, mockIteration{ID: id})
	return &s.Iterations[len(s.Iterations)-1]
}

func readStore(path string) (*mockStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var store mockStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("corrupt store %s: %w", path, err)
	}
	return &store, nil
}

func writeStore(path string, store *mockStore) error {
	data, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	return nil
}

func readRegistry(dataRoot string) ([]registryEntry, error) {
	data, err := os.ReadFile(project.RecentProjectsPath(dataRoot))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []registryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("corrupt recent projects registry: %w", err)
	}
	return entries, nil
}

func writeRegistry(dataRoot string, entries []registryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding recent projects registry: %w", err)
	}
	if err := os.MkdirAll(dataRoot, 0o755); err != nil {
		return fmt.Errorf("creating data root: %w", err)
	}
	if err := os.WriteFile(project.RecentProjectsPath(dataRoot), data, 0o644); err != nil {
		return fmt.Errorf("writing recent projects registry: %w", err)
	}
	return nil
}

// touchRegistry moves entry to the front, dropping any previous entry
// with the same ID and trimming to the registry cap.
func touchRegistry(entries []registryEntry, entry registryEntry) []registryEntry {
	updated := []registryEntry{entry}
	for _, existing := range entries {
		if existing.ID == entry.ID {
			continue
		}
		updated = append(updated, existing)
	}
	if len(updated) > maxRecentProjects {
		updated = updated[:maxRecentProjects]
	}
	return updated
}

// countImportableLines counts the document's non-blank lines, minus
// comment lines marked with a leading #. The real backend counts
// parsed ReqIF objects; lines keep the mock deterministic and let a
// test predict the count by writing the file.
func countImportableLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading import file: %w", err)
	}
	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		count++
	}
	return count, nil
}

// marshalReply serializes a reply document the way the real backend
// does: compact JSON on one line.
func marshalReply(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encoding reply: %w", err)
	}
	return string(data), nil
}
