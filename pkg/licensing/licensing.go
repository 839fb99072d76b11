// Package licensing implements elm-pair's license check: free for
// non-commercial use, with a paid tier. cmd/elm-pair logs an
// EnteredLicenseKey event (pkg/editor) but does not verify the key, so
// the license it holds stays NonCommercial. This package is
// grounded directly on the original implementation's licensing/mod.rs
// (see original_source's _INDEX.md): a non-commercial default, a time-
// bounded commercial grant, and a "show an info file" fallback the
// editor driver is asked to reveal when the license has lapsed.
package licensing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jwoudenberg/elm-pair/pkg/editor"
)

// License mirrors the two-variant enum licensing/mod.rs defines:
// perpetually-free non-commercial use, or a commercial grant that
// expires.
type License struct {
	Commercial bool
	OrderID    uint16
	ExpiresAt  time.Time
}

// NonCommercial is the default License every fresh install starts
// with.
var NonCommercial = License{}

// Active reports whether l currently grants commercial use.
func (l License) Active() bool {
	return l.Commercial && time.Now().Before(l.ExpiresAt)
}

const (
	licensingInfo         = "elm-pair is free to use for non-commercial projects.\nFor commercial use, a license key is required.\n"
	licenseExpiredInfo    = "Your elm-pair commercial license has expired.\n"
	activateInstructions  = "Enter your license key in the elm-pair settings to activate it.\n"
	activateInstructionsV = "Run \"Elm Pair: Enter License Key\" from the command palette to activate it.\n"
)

// Info returns the lines of license-status text to show the user,
// chosen the way license_info does: which body text depends on
// whether this is a first-time nag or an expiry notice, and the
// activation instructions depend on which editor is asking.
func Info(l License, kind editor.Kind) []string {
	body := licensingInfo
	if l.Commercial {
		body = licenseExpiredInfo
	}
	instructions := activateInstructions
	if kind == editor.KindVSCode {
		instructions = activateInstructionsV
	}
	return []string{body, "\n", instructions}
}

// WriteInfoFile writes info's lines to <dir>/license.txt and returns
// the path, mirroring write_license_info_to_file.
func WriteInfoFile(dir string, info []string) (string, error) {
	path := filepath.Join(dir, "license.txt")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("licensing: creating %s: %w", path, err)
	}
	defer f.Close()
	for _, chunk := range info {
		if _, err := f.WriteString(chunk); err != nil {
			return "", fmt.Errorf("licensing: writing license info: %w", err)
		}
	}
	return path, nil
}

// ShowInfo writes the current license status to elmPairDir/license.txt
// and asks driver to reveal it to the user, unless l is already an
// active commercial license -- the show_license_info early return.
func ShowInfo(ctx context.Context, l License, driver editor.Driver, elmPairDir string) error {
	if l.Active() {
		return nil
	}
	path, err := WriteInfoFile(elmPairDir, Info(l, driver.Kind()))
	if err != nil {
		return err
	}
	return driver.ShowFile(ctx, path)
}
