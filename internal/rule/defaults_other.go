//go:build !darwin && !windows

package rule

// DefaultBrowser returns the first-launch default entry: the distribution
// default browser command on shortcut "1".
func DefaultBrowser() Browser {
	return Browser{
		ID:          NewID(),
		Name:        "Firefox",
		BundleID:    "firefox",
		ShortcutKey: "1",
	}
}
