// Package server exposes the planner as a JSON HTTP API.
//
// Each browser gets its own session, identified by the tripplanner_session
// cookie; an unknown or missing cookie starts a new session. View endpoints
// and trip-scoped operations act on the session's active trip.
//
// Status codes
//
//	200/201/204  success
//	400          malformed request or index out of range
//	404          unknown trip or route
//	422          validation warning, body {"warning": "..."}
//	502          inference endpoint failed
//	504          inference endpoint timed out
//
// Every request is logged with method, path, status, bytes and duration, and
// counted in the Prometheus registry served at /metrics.
package server
