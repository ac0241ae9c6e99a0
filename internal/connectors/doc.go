// Package connectors holds the sources documents can be imported from.
// Each connector yields file paths and change events; ingestion itself
// goes through the DocumentService so every upload is validated the same way.
package connectors
