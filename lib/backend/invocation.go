// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"strconv"
	"strings"
)

// Backend command names. These are the first argument after the entry
// point script and select the backend operation.
const (
	CommandImportMasterSpec       = "import_master_spec"
	CommandImportSupplierFeedback = "import_supplier_feedback"
	CommandGetCockpitData         = "get_cockpit_data"
	CommandListRecentProjects     = "list_recent_projects"
	CommandCreateProject          = "create_project"
)

// Invocation is one fully-encoded backend command: the command name
// plus its ordered arguments. Arguments are discrete argv entries.
// The runner never joins them into a command line, so their bytes
// reach the backend exactly as given.
type Invocation struct {
	// Command is the backend command name (first argv entry after
	// the entry point).
	Command string

	// Args are the command's positional arguments, in order.
	Args []string
}

// Argv returns the complete argument vector after the interpreter:
// the entry point script, the command name, then the arguments.
func (inv Invocation) Argv(script string) []string {
	argv := make([]string, 0, len(inv.Args)+2)
	argv = append(argv, script, inv.Command)
	return append(argv, inv.Args...)
}

// ImportMasterSpecInvocation encodes the master specification import:
// parse the document at filePath and load it into the project store.
// The backend replies with the number of imported requirements on
// stdout.
func ImportMasterSpecInvocation(storeURL string, projectID int, filePath string) (Invocation, error) {
	if err := checkArgument("store URL", storeURL); err != nil {
		return Invocation{}, err
	}
	if err := checkArgument("file path", filePath); err != nil {
		return Invocation{}, err
	}
	return Invocation{
		Command: CommandImportMasterSpec,
		Args:    []string{storeURL, strconv.Itoa(projectID), filePath},
	}, nil
}

// ImportSupplierFeedbackInvocation encodes the supplier feedback
// import: parse the document at filePath and record it against the
// named iteration and supplier. The backend replies with the number
// of imported feedback rows on stdout.
func ImportSupplierFeedbackInvocation(storeURL string, projectID int, iterationID, supplierName, filePath string) (Invocation, error) {
	if err := checkArgument("store URL", storeURL); err != nil {
		return Invocation{}, err
	}
	if err := checkArgument("iteration identifier", iterationID); err != nil {
		return Invocation{}, err
	}
	if err := checkArgument("supplier name", supplierName); err != nil {
		return Invocation{}, err
	}
	if err := checkArgument("file path", filePath); err != nil {
		return Invocation{}, err
	}
	return Invocation{
		Command: CommandImportSupplierFeedback,
		Args:    []string{storeURL, strconv.Itoa(projectID), iterationID, supplierName, filePath},
	}, nil
}

// CockpitDataInvocation encodes the cockpit aggregate query for one
// iteration. The backend replies with a serialized payload on stdout;
// the bridge does not interpret it.
//
// Unlike feedback import, the iteration here is the store's numeric
// row identifier, not the display identifier. The command surface
// inherited this asymmetry from the UI contract.
func CockpitDataInvocation(storeURL string, projectID, iterationID int) (Invocation, error) {
	if err := checkArgument("store URL", storeURL); err != nil {
		return Invocation{}, err
	}
	return Invocation{
		Command: CommandGetCockpitData,
		Args:    []string{storeURL, strconv.Itoa(projectID), strconv.Itoa(iterationID)},
	}, nil
}

// ListRecentProjectsInvocation encodes the recent projects query
// against the registry under dataRoot. The backend replies with a
// serialized project list on stdout.
func ListRecentProjectsInvocation(dataRoot string) (Invocation, error) {
	if err := checkArgument("data root", dataRoot); err != nil {
		return Invocation{}, err
	}
	return Invocation{
		Command: CommandListRecentProjects,
		Args:    []string{dataRoot},
	}, nil
}

// CreateProjectInvocation encodes project creation: the backend
// creates the store, registers it, and replies with a serialized
// project description on stdout.
func CreateProjectInvocation(dataRoot, name, path string) (Invocation, error) {
	if err := checkArgument("data root", dataRoot); err != nil {
		return Invocation{}, err
	}
	if err := checkArgument("project name", name); err != nil {
		return Invocation{}, err
	}
	if err := checkArgument("project path", path); err != nil {
		return Invocation{}, err
	}
	return Invocation{
		Command: CommandCreateProject,
		Args:    []string{dataRoot, name, path},
	}, nil
}

// checkArgument rejects values that cannot cross the argv boundary.
// A NUL byte terminates the C string an argv entry becomes, silently
// truncating the value; an empty required argument would shift the
// positional meaning of everything after it. Everything else,
// quotes and semicolons and newlines and arbitrary unicode included,
// is transmitted literally and needs no escaping.
func checkArgument(parameter, value string) error {
	if value == "" {
		return &EncodingError{Parameter: parameter, Reason: "must not be empty"}
	}
	if strings.ContainsRune(value, 0) {
		return &EncodingError{Parameter: parameter, Reason: "contains a NUL byte"}
	}
	return nil
}
