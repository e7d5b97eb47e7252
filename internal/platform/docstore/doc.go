// Package docstore implements store.TaskStore on top of a generic document
// collection. The Collection interface is the only thing a backend has to
// provide; sqldoc, redisdoc and neo4jdoc are the concrete collections.
//
// Tasks are stored as documents with the fields title, description, state
// and createdAt, where createdAt is an epoch value in milliseconds.
package docstore
