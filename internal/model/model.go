// Package model holds the records the service stores and the request
// payloads its routes accept.
package model
