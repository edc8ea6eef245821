package rule

// DefaultBrowser returns the first-launch default entry: the platform's
// native browser on shortcut "1".
func DefaultBrowser() Browser {
	return Browser{
		ID:          NewID(),
		Name:        "Microsoft Edge",
		BundleID:    "msedge",
		ShortcutKey: "1",
	}
}
