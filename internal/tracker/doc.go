// Package tracker orchestrates a full tracking run: search every configured
// subreddit, classify posts as episode threads or trailers, append
// comment-count snapshots to the history store, and write the CSV, chart,
// and dashboard outputs.
package tracker
