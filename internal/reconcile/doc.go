package reconcile

// Package reconcile keeps each screen's fetch state consistent when requests
// overlap, complete out of order or race with connectivity changes.
//
// Every request is tagged with its query and a unique id. A completion is
// applied only when its tag is the pending one, after which the pending tag
// is cleared. Going offline switches the presentation to the offline notice
// immediately; coming back online after a connectivity failure re-fetches the
// last query exactly once.
