// Package reddit implements the polite, no-auth search client for the Reddit
// public JSON endpoint.
//
// Searches are issued per subreddit and query term with a configurable
// User-Agent. HTTP 429 responses honor Retry-After when present and both
// rate limits and server errors back off exponentially within a bounded
// attempt budget. Responses with a non-JSON Content-Type (login redirects,
// block pages) fail the request with the final URL in the error.
package reddit
