// Package outline defines the document and collection models Folio displays
// and the sources that provide them.
//
// Client talks to an Outline-compatible wiki API. Every endpoint is a POST
// with a JSON body and a bearer token:
//
//	POST /api/documents.list   {"limit":100,"offset":0}
//	POST /api/collections.list {"limit":100,"offset":0}
//
// List calls page through results until a short page is returned.
// 401 and 403 responses are reported as ErrUnauthorized.
//
// Fixture is a read-only catalog loaded from YAML so the UI can run without a
// server.
package outline
