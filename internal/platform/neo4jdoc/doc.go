// Package neo4jdoc provides a docstore.Collection backed by Neo4j.
//
// Each document is a (:Document {collection, id, data, seq}) node where data
// holds the JSON body and seq preserves insertion order. A per-collection
// (:DocumentSequence) node hands out seq values.
package neo4jdoc
