package main

import (
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	v := getVersion()

	if v == "" {
		t.Fatal("getVersion() returned empty string")
	}

	// Under go test the module version is "(devel)", so this is "dev"
	// unless ldflags set it.
	if v != "dev" && !strings.HasPrefix(v, "v") {
		t.Errorf("getVersion() = %q, want 'dev' or 'vX.Y.Z'", v)
	}
}

func TestGetVersion_Ldflags(t *testing.T) {
	old := version
	version = "v9.9.9"
	defer func() { version = old }()

	if got := getVersion(); got != "v9.9.9" {
		t.Errorf("getVersion() = %q, want v9.9.9", got)
	}
}
