// Package favorites keeps the session-wide list of favorite places.
package favorites
