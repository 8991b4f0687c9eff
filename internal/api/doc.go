// Package api implements the HTTP transport for the Upgrade.Chat API:
// bearer token acquisition and caching, rate-limit back-off and retry,
// and mapping of responses into the shared error taxonomy.
package api
