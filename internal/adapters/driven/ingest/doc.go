// Package ingest implements the search-index sink.
//
// Records are posted as JSON to a Logstash HTTP input; duplicate detection
// queries the Elasticsearch index that Logstash feeds, using the commit SHA
// as the document ID.
package ingest
