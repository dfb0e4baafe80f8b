// Package notes keeps free-text travel notes for the whole session.
//
// Notes are not tied to a trip. They are kept in insertion order with the
// time they were written and removed by position.
package notes
