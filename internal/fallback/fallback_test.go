package fallback

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatasetsAreDeterministic(t *testing.T) {
	require.Equal(t, Teams(), Teams())
	require.Equal(t, Messages("mock-team-1"), Messages("mock-team-1"))
	require.Equal(t, Todos("mock-team-1"), Todos("mock-team-1"))
	require.Equal(t, Summaries("mock-team-1"), Summaries("mock-team-1"))
}

func TestAllIdentifiersCarryPrefix(t *testing.T) {
	for _, tm := range Teams() {
		require.True(t, IsDemoID(tm.ID), "team %s", tm.ID)
		for _, m := range tm.Members {
			require.True(t, IsDemoID(m.UserID), "member %s", m.UserID)
		}
	}
	for _, msg := range Messages("mock-team-1") {
		require.True(t, IsDemoID(msg.ID))
		require.True(t, IsDemoID(msg.SenderID))
	}
	for _, td := range Todos("mock-team-1") {
		require.True(t, IsDemoID(td.ID))
	}
	for _, s := range Summaries("mock-team-1") {
		require.True(t, IsDemoID(s.ID))
	}
}

func TestScopeFlowsThrough(t *testing.T) {
	for _, msg := range Messages("mock-team-2") {
		require.Equal(t, "mock-team-2", msg.TeamID)
	}
	for _, td := range Todos("mock-team-2") {
		require.Equal(t, "mock-team-2", td.TeamID)
	}
}

func TestIsDemoScope(t *testing.T) {
	require.True(t, IsDemoScope("mock-team-1"))
	require.False(t, IsDemoScope("team-1"))
	require.False(t, IsDemoScope(""))
}

func TestRecordsValidate(t *testing.T) {
	for _, tm := range Teams() {
		require.NoError(t, tm.Validate())
	}
	for _, msg := range Messages("mock-team-1") {
		require.NoError(t, msg.Validate())
	}
	for _, td := range Todos("mock-team-1") {
		require.NoError(t, td.Validate())
	}
	for _, s := range Summaries("mock-team-1") {
		require.NoError(t, s.Validate())
	}
}
