package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `synapse-mcp exposes a team workspace (chat, todos, summaries, assistant) backed by a polled REST backend.

Core concepts (keep this mental model small):
- Team: the unit of selection. select_team starts syncing that team's messages, todos, and summaries every few seconds; deselect_team (or selecting another team) stops the old sync and drops its data.
- Snapshot: every list tool returns the data plus a "sync" block (status, offline flag, last fetch time). Check it before trusting the data.
- Optimistic writes: send_message and create_todo return as soon as the record is visible locally. Delivery finishes in the background; a failure restores the draft and shows up in get_sync_status.
- Offline: when the backend is unreachable, list tools serve the last cached snapshot or built-in demo data. Demo identifiers start with "mock-" and are read-only.

Rules of engagement:
1) Orient: call list_teams, then select_team.
2) Read: list_messages / list_todos / list_summaries. Each call refreshes from the backend first.
3) Write: send_message / create_todo / delete_todo / generate_summary / delete_summary. Writes need a selected, non-demo team.
4) After an "accepted" write, check get_sync_status if you need delivery confirmation; a composer_error there means the send failed and the draft was restored.
5) If a list reports offline, calling it again acts as the retry that can bring the workspace back online.

Docs (progressive disclosure):
- synapse://docs/index (what to read when)
- synapse://docs/sync-model (polling, snapshots, optimistic writes)
- synapse://docs/offline (offline mode and demo data)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "synapse://docs/index",
		Name:        "docs_index",
		Title:       "synapse-mcp docs index",
		Description: "Entry point for agent-facing docs: what exists and what to read when.",
		Content: `# synapse-mcp: Agent Docs Index

Keep your baseline context small and load deeper docs only when needed.

## Quick start (no deep docs)

1. list_teams, pick one, select_team.
2. list_messages / list_todos / list_summaries to read.
3. send_message / create_todo to write; both return as soon as the record is visible locally.
4. get_sync_status whenever something looks stale or a write may have failed.

## When to read more

- Data looks stale, or you need to reason about the "sync" block on list responses: read synapse://docs/sync-model.
- A list response has "offline": true, or identifiers start with "mock-": read synapse://docs/offline.

## Known limitations

- One write of each kind (message, todo) may be in flight at a time; a second submit is rejected with SEND_IN_FLIGHT.
- A failed send is not retried automatically. The draft is restored and waits for you to send it again.
- Deleting is immediate, not optimistic: delete_todo and delete_summary hit the backend synchronously.
`,
	},
	{
		URI:         "synapse://docs/sync-model",
		Name:        "docs_sync_model",
		Title:       "Polling and optimistic writes",
		Description: "How snapshots stay fresh and what 'accepted' means for writes.",
		Content: `# Sync model

## Polling

Selecting a team starts a poll loop per resource (messages, todos, summaries); the team list has its own loop. Each loop fetches immediately, then every few seconds in the background. Every list tool also triggers an immediate foreground refresh before returning.

Responses carry a "sync" block:

- status: idle | loading | populated | empty | error | offline
- scope: the team the data belongs to
- offline: true when cached or demo data is being served
- error: present when the last foreground fetch or an auth check failed
- fetched_at: when the data was last confirmed by the backend

A missing collection (backend 404) reads as an empty list, not an error. Background fetch failures never disturb data you already have; only a foreground failure surfaces in "error".

## Optimistic writes

send_message and create_todo validate locally, then return "accepted" with the record already visible in the next list call under a provisional "local-" identifier. The backend call continues in the background:

- On success the confirmed record is appended too; the next poll replaces the whole list with the backend's version, which de-duplicates.
- On failure the draft is restored exactly as submitted and the error appears in get_sync_status as composer_error. Nothing is retried automatically.

Switching teams mid-flight is safe: responses for a superseded team are discarded, never merged into the new team's data.
`,
	},
	{
		URI:         "synapse://docs/offline",
		Name:        "docs_offline",
		Title:       "Offline mode and demo data",
		Description: "What happens when the backend is unreachable.",
		Content: `# Offline mode

When a fetch fails with a transport error and no data is held yet, the resource switches to offline and serves, in order of preference:

1. The last snapshot cached on disk for that team, if caching is enabled.
2. Built-in demo data whose identifiers start with "mock-".

Offline is sticky: background polls that succeed refresh the cache but do not flip the status back. The workspace returns online when a foreground fetch succeeds, and every list tool call counts as one. So the recovery procedure is simply: call the list tool again.

Demo data is read-only. send_message, create_todo, delete_todo, generate_summary, and delete_summary are rejected with DEMO_SCOPE while a "mock-" team is selected or a "mock-" record is targeted. Authentication failures (AUTH_FAILED) never trigger offline mode; fix the token instead.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
