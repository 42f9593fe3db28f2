// Package liveview serves a settings manager over HTTP and streams every
// change to connected browsers over WebSocket.
//
// Routes:
//
//	GET  /settings          all values as a JSON object
//	GET  /settings/{key}    one value
//	PUT  /settings/{key}    assign a JSON value
//	POST /settings/save     write the settings file
//	POST /settings/load     re-read the settings file
//	GET  /ws                change stream
//	GET  /metrics           Prometheus metrics, when a gatherer is set
//
// Bindables are not safe for concurrent use, so the server serializes all
// access to the manager, and to every cell bound to it, behind one mutex.
// Code outside the server that touches the same cells must go through
// Server.Update.
package liveview
