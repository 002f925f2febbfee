// Package tracker talks to the production tracking service's REST API:
// token login, shot lookup, and plate version publishing.
package tracker
