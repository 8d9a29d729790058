/*
Package server implements msgpack IPC for keyserve.

Clients write msgpack maps to stdin and read one msgpack map per request
from stdout. Requests are handled one at a time, in order, and every
response carries the request ID.

# Requests

The action field "a" selects the operation; it defaults to "complete".

	{"id": "r1", "p": "4663", "l": 8}
	{"id": "r2", "a": "match", "p": "4663"}
	{"id": "r3", "a": "add", "w": "hood", "f": 12}
	{"id": "r4", "a": "stats"}

complete answers with the words spelled exactly by the input followed by
longer completions; match answers with the exact words only. Both respond
with ranked suggestions and the time taken in microseconds:

	{"id": "r1", "s": [{"w": "home", "r": 1, "f": 3}, {"w": "good", "r": 2, "f": 2}], "c": 2, "t": 41}

add and stats respond with a status and, for stats, the completer counters:

	{"id": "r4", "status": "ok", "stats": {"totalWords": 4}}

# Errors

Failed requests are answered with a CompletionError. Code 400 marks bad
requests, 500 internal failures.

	{"id": "r5", "e": "prefix too long", "c": 400}
*/
package server

// Actions understood by the server.
const (
	ActionComplete = "complete"
	ActionMatch    = "match"
	ActionAdd      = "add"
	ActionStats    = "stats"
)

// Request is the single message shape clients send.
type Request struct {
	ID        string `msgpack:"id"`
	Action    string `msgpack:"a,omitempty"`
	Prefix    string `msgpack:"p,omitempty"`
	Limit     int    `msgpack:"l,omitempty"`
	Word      string `msgpack:"w,omitempty"`
	Frequency int    `msgpack:"f,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word      string `msgpack:"w"`
	Rank      uint16 `msgpack:"r"`
	Frequency int    `msgpack:"f,omitempty"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// StatusResponse answers add and stats requests.
type StatusResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
