package domain

// Document represents a schemaless row stored in a document collection
type Document map[string]interface{}
