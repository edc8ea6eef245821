package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steer-dev/steer/internal/db"
)

// TestWorkflow_RoutingSetup walks through a full configuration session:
// onboarding, adding browsers and rules, reordering, previewing routes,
// removing a browser, and reopening the database.
func TestWorkflow_RoutingSetup(t *testing.T) {
	database, err := db.Init(t.TempDir())
	require.NoError(t, err)
	defer database.Close()

	st, err := Open(database)
	require.NoError(t, err)
	require.False(t, st.OnboardingCompleted())

	work, err := st.AddBrowser("Work", "com.work.browser", "")
	require.NoError(t, err)
	personal, err := st.AddBrowser("Personal", "com.personal.browser", "")
	require.NoError(t, err)
	st.SetOnboardingCompleted(true)

	_, err = st.AddRule("GitHub", "github.com", "", work.BundleID)
	require.NoError(t, err)
	_, err = st.AddRule("Google", "*.google.com", "", work.BundleID)
	require.NoError(t, err)
	social, err := st.AddRule("Social", "twitter.com", "", personal.BundleID)
	require.NoError(t, err)

	// Everything routes as configured.
	assert.Equal(t, work.BundleID, st.ResolvedBrowser("https://github.com/x").BundleID)
	assert.Equal(t, work.BundleID, st.ResolvedBrowser("https://docs.google.com/d/1").BundleID)
	assert.Equal(t, personal.BundleID, st.ResolvedBrowser("https://twitter.com/feed").BundleID)
	assert.Nil(t, st.ResolvedBrowser("https://unrelated.example/"))

	// Promote the social rule to the top; routing is unaffected since the
	// rules do not overlap, but the stored order changes.
	require.NoError(t, st.MoveRules([]int{2}, 0))
	assert.Equal(t, social.ID, st.Rules()[0].ID)

	// Removing the personal browser cascades to its rule.
	require.NoError(t, st.RemoveBrowser(personal.ID))
	assert.Len(t, st.Rules(), 2)
	assert.Nil(t, st.ResolvedBrowser("https://twitter.com/feed"))

	// A fresh store over the same database sees the same state.
	reopened, err := Open(database)
	require.NoError(t, err)
	assert.Equal(t, st.Browsers(), reopened.Browsers())
	assert.Equal(t, st.Rules(), reopened.Rules())
	assert.True(t, reopened.OnboardingCompleted())
}
