/*
main.go - dimql command-line client

PURPOSE:
  Operational companion to the lookup server: runs the same lookups,
  resolution, hierarchy walks, and ad-hoc queries directly against the
  backend from a terminal, printing JSON for piping into jq. Uses an
  in-process memory cache, so every invocation sees fresh data.

CREDENTIALS:
  Read from the environment (same NETSUITE_* variables as the server),
  with .env/.env.local overrides for local development.
*/
package main

func main() {
	execute()
}
