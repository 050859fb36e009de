// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"errors"
	"reflect"
	"testing"
)

func TestImportMasterSpecInvocationArgv(t *testing.T) {
	inv, err := ImportMasterSpecInvocation("sqlite:////data/projects/7.sqlite", 7, "/data/spec.reqif")
	if err != nil {
		t.Fatalf("ImportMasterSpecInvocation: %v", err)
	}

	want := []string{
		"/opt/backend/main.py",
		"import_master_spec",
		"sqlite:////data/projects/7.sqlite",
		"7",
		"/data/spec.reqif",
	}
	if got := inv.Argv("/opt/backend/main.py"); !reflect.DeepEqual(got, want) {
		t.Errorf("Argv = %q, want %q", got, want)
	}
}

func TestImportSupplierFeedbackInvocationArgv(t *testing.T) {
	inv, err := ImportSupplierFeedbackInvocation(
		"sqlite:////data/projects/7.sqlite", 7, "I-001_alpha", "Acme Gmbh", "/tmp/feedback.reqif")
	if err != nil {
		t.Fatalf("ImportSupplierFeedbackInvocation: %v", err)
	}

	want := []string{
		"main.py",
		"import_supplier_feedback",
		"sqlite:////data/projects/7.sqlite",
		"7",
		"I-001_alpha",
		"Acme Gmbh",
		"/tmp/feedback.reqif",
	}
	if got := inv.Argv("main.py"); !reflect.DeepEqual(got, want) {
		t.Errorf("Argv = %q, want %q", got, want)
	}
}

func TestCockpitDataInvocationArgv(t *testing.T) {
	inv, err := CockpitDataInvocation("sqlite:////data/projects/3.sqlite", 3, 12)
	if err != nil {
		t.Fatalf("CockpitDataInvocation: %v", err)
	}

	want := []string{"main.py", "get_cockpit_data", "sqlite:////data/projects/3.sqlite", "3", "12"}
	if got := inv.Argv("main.py"); !reflect.DeepEqual(got, want) {
		t.Errorf("Argv = %q, want %q", got, want)
	}
}

func TestListRecentProjectsInvocationArgv(t *testing.T) {
	inv, err := ListRecentProjectsInvocation("/home/u/.reqcockpit")
	if err != nil {
		t.Fatalf("ListRecentProjectsInvocation: %v", err)
	}

	want := []string{"main.py", "list_recent_projects", "/home/u/.reqcockpit"}
	if got := inv.Argv("main.py"); !reflect.DeepEqual(got, want) {
		t.Errorf("Argv = %q, want %q", got, want)
	}
}

func TestCreateProjectInvocationArgv(t *testing.T) {
	inv, err := CreateProjectInvocation("/home/u/.reqcockpit", "Brake System", "/home/u/projects")
	if err != nil {
		t.Fatalf("CreateProjectInvocation: %v", err)
	}

	want := []string{"main.py", "create_project", "/home/u/.reqcockpit", "Brake System", "/home/u/projects"}
	if got := inv.Argv("main.py"); !reflect.DeepEqual(got, want) {
		t.Errorf("Argv = %q, want %q", got, want)
	}
}

func TestHostileValuesStayLiteral(t *testing.T) {
	// Shell metacharacters, quotes, and interpreter syntax must
	// survive encoding as single literal argv entries. The encoder
	// rejects nothing here: escaping is not its job, because there
	// is no string boundary to escape for.
	hostile := []string{
		`spec'; import os; os.system('reboot'); '.reqif`,
		`$(rm -rf /tmp)`,
		"file with\nnewline.reqif",
		`"; DROP TABLE requirements; --`,
		"ünïcodé päth.reqif",
	}

	for _, value := range hostile {
		inv, err := ImportMasterSpecInvocation("sqlite:////d/p/1.sqlite", 1, value)
		if err != nil {
			t.Errorf("value %q rejected: %v", value, err)
			continue
		}
		if got := inv.Args[2]; got != value {
			t.Errorf("value %q transmitted as %q", value, got)
		}
		if len(inv.Args) != 3 {
			t.Errorf("value %q split into %d args", value, len(inv.Args))
		}
	}
}

func TestEmptyArgumentRejected(t *testing.T) {
	_, err := ImportMasterSpecInvocation("sqlite:////d/p/1.sqlite", 1, "")
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("error type = %T, want *EncodingError", err)
	}
	if encErr.Parameter != "file path" {
		t.Errorf("Parameter = %q, want %q", encErr.Parameter, "file path")
	}
}

func TestNulByteRejected(t *testing.T) {
	_, err := ImportSupplierFeedbackInvocation(
		"sqlite:////d/p/1.sqlite", 1, "I-001_a", "Acme\x00Corp", "/tmp/f.reqif")
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("error type = %T, want *EncodingError", err)
	}
	if encErr.Parameter != "supplier name" {
		t.Errorf("Parameter = %q, want %q", encErr.Parameter, "supplier name")
	}
}

func TestCreateProjectInvocationRejectsEmptyName(t *testing.T) {
	_, err := CreateProjectInvocation("/data", "", "/home/u/projects")
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("error type = %T, want *EncodingError", err)
	}
	if encErr.Parameter != "project name" {
		t.Errorf("Parameter = %q, want %q", encErr.Parameter, "project name")
	}
}
