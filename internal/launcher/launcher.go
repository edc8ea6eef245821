// Package launcher starts browsers. It is the only part of the program
// that touches the OS: everything upstream of it is a pure decision over
// the configuration store.
package launcher

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/gen2brain/beeep"

	"github.com/steer-dev/steer/internal/rule"
)

var getRuntime = func() string { return runtime.GOOS }

// OpenIn launches rawURL in the given configured browser.
// On darwin the bundle identifier is handed to open -b; on windows it is
// treated as the program name for start; elsewhere it is treated as the
// browser command itself.
func OpenIn(b rule.Browser, rawURL string) error {
	name, args, err := commandFor(getRuntime(), b.BundleID, rawURL)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", b.Name, err)
	}
	return nil
}

// commandFor builds the platform launch command for a target browser.
func commandFor(goos, bundleID, rawURL string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{"-b", bundleID, rawURL}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", bundleID, rawURL}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return bundleID, []string{rawURL}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// OpenDefault opens rawURL in the system default browser, the fallback
// when no routing rule matches.
func OpenDefault(rawURL string) error {
	name, args, err := defaultCommandFor(getRuntime(), rawURL)
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// defaultCommandFor builds the platform default-browser command.
func defaultCommandFor(goos, rawURL string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}, nil
	case "windows":
		// Not "cmd /c start": start treats & in URLs as a command separator.
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{rawURL}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Notify posts a best-effort desktop notification. Failures are ignored;
// routing must never depend on the notification stack.
func Notify(title, message string) {
	_ = beeep.Notify(title, message, "")
}
