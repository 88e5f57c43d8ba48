package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetLdflagsWin(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"
	info := Get()
	if info.Version != "v1.2.3" || info.Commit != "abc123" || info.Date != "2026-01-02T03:04:05Z" {
		t.Errorf("Get() = %+v, want ldflags values", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestTemplate(t *testing.T) {
	oldV := Version
	t.Cleanup(func() { Version = oldV })
	Version = "v9.9.9"

	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version v9.9.9\n") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "version: v9.9.9") {
		t.Errorf("String() = %q", String())
	}
}
