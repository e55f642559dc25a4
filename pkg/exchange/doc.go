// Package exchange implements the capability namespace through which
// plugins expose named functions and constants to each other.
//
// Publishing writes ns[owner][name] = value; republishing under the same
// owner and name overwrites. Lookup is a plain read: a missing owner or
// name is reported with ok=false and callers decide what to do. Require
// turns a miss into a MissingCollaborator error for initialization code
// that cannot proceed without the capability.
package exchange
