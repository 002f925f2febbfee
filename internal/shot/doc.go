// Package shot holds the data model carried through an ingest run: the
// editorial cut, the shot record with its computed digital frame range, and
// the image sequence artifact handed between stages.
package shot
