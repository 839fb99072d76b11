package licensing

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jwoudenberg/elm-pair/pkg/editor"
)

func TestActive(t *testing.T) {
	if NonCommercial.Active() {
		t.Fatal("NonCommercial must never be active")
	}

	expired := License{Commercial: true, ExpiresAt: time.Now().Add(-time.Hour)}
	if expired.Active() {
		t.Fatal("expired commercial license must not be active")
	}

	current := License{Commercial: true, ExpiresAt: time.Now().Add(time.Hour)}
	if !current.Active() {
		t.Fatal("unexpired commercial license must be active")
	}
}

func TestInfoInstructionsByEditor(t *testing.T) {
	vscode := Info(NonCommercial, editor.KindVSCode)
	if vscode[len(vscode)-1] != activateInstructionsV {
		t.Fatalf("vscode instructions = %q", vscode[len(vscode)-1])
	}

	other := Info(NonCommercial, editor.Kind(99))
	if other[len(other)-1] != activateInstructions {
		t.Fatalf("non-vscode instructions = %q", other[len(other)-1])
	}
}

func TestInfoBodyExpiredVsFresh(t *testing.T) {
	fresh := Info(NonCommercial, editor.KindVSCode)
	if fresh[0] != licensingInfo {
		t.Fatalf("fresh-install body = %q", fresh[0])
	}

	expired := License{Commercial: true, ExpiresAt: time.Now().Add(-time.Hour)}
	lapsed := Info(expired, editor.KindVSCode)
	if lapsed[0] != licenseExpiredInfo {
		t.Fatalf("expired body = %q", lapsed[0])
	}
}

func TestWriteInfoFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteInfoFile(dir, Info(NonCommercial, editor.KindVSCode))
	if err != nil {
		t.Fatalf("WriteInfoFile: %v", err)
	}
	if path != filepath.Join(dir, "license.txt") {
		t.Fatalf("path = %q", path)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if len(contents) == 0 {
		t.Fatal("expected non-empty license.txt")
	}
}

func TestShowInfoSkipsActiveCommercialLicense(t *testing.T) {
	driver := editor.NewFakeDriver(editor.KindVSCode)
	active := License{Commercial: true, ExpiresAt: time.Now().Add(time.Hour)}
	if err := ShowInfo(context.Background(), active, driver, t.TempDir()); err != nil {
		t.Fatalf("ShowInfo: %v", err)
	}
	if len(driver.ShownPaths) != 0 {
		t.Fatalf("expected no file shown for an active license, got %v", driver.ShownPaths)
	}
}

func TestShowInfoShowsFileForNonCommercial(t *testing.T) {
	driver := editor.NewFakeDriver(editor.KindVSCode)
	dir := t.TempDir()
	if err := ShowInfo(context.Background(), NonCommercial, driver, dir); err != nil {
		t.Fatalf("ShowInfo: %v", err)
	}
	if len(driver.ShownPaths) != 1 {
		t.Fatalf("expected one file shown, got %v", driver.ShownPaths)
	}
	if driver.ShownPaths[0] != filepath.Join(dir, "license.txt") {
		t.Fatalf("shown path = %q", driver.ShownPaths[0])
	}
}
