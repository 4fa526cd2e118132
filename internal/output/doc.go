// Package output persists a generated course: the tutors.json document, the
// assets it links to and the static files served next to it.
package output
