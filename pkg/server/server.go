package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/keyserve/internal/utils"
	"github.com/bastiangx/keyserve/pkg/config"
	"github.com/bastiangx/keyserve/pkg/suggest"
	"github.com/bastiangx/keyserve/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	codeBadRequest = 400
	codeInternal   = 500
)

// Server handles the IPC for word completions
type Server struct {
	completer    suggest.ICompleter
	config       *config.Config
	dec          *msgpack.Decoder
	out          *bufio.Writer
	enc          *msgpack.Encoder
	requestCount int
}

// NewServer creates a completion server using stdin/stdout for IPC.
func NewServer(completer suggest.ICompleter, cfg *config.Config) *Server {
	return NewServerWithIO(completer, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing
// responses to w.
func NewServerWithIO(completer suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	out := bufio.NewWriter(w)
	return &Server{
		completer: completer,
		config:    cfg,
		dec:       msgpack.NewDecoder(bufio.NewReader(r)),
		out:       out,
		enc:       msgpack.NewEncoder(out),
	}
}

// Start serves requests until the input ends. A clean end of input
// returns nil.
func (s *Server) Start() error {
	log.Debug("Starting msgpack server")
	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}
		s.requestCount++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			log.Errorf("Unmarshaling request: %v", err)
			if err := s.sendError("", "invalid msgpack request", codeBadRequest); err != nil {
				return err
			}
			continue
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the action. Only write failures are
// returned; request problems are answered with a CompletionError.
func (s *Server) handleRequest(req Request) error {
	switch req.Action {
	case "", ActionComplete:
		return s.handleSuggest(req, s.completer.Complete)
	case ActionMatch:
		return s.handleSuggest(req, func(input string, limit int) []suggest.Suggestion {
			res := s.completer.Match(input)
			if len(res) > limit {
				res = res[:limit]
			}
			return res
		})
	case ActionAdd:
		return s.handleAdd(req)
	case ActionStats:
		return s.send(StatusResponse{ID: req.ID, Status: "ok", Stats: s.completer.Stats()})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), codeBadRequest)
	}
}

func (s *Server) handleSuggest(req Request, lookup func(string, int) []suggest.Suggestion) error {
	if req.Prefix == "" {
		return s.sendError(req.ID, "missing prefix", codeBadRequest)
	}
	n := utf8.RuneCountInString(req.Prefix)
	if n < s.config.Server.MinPrefix {
		return s.sendError(req.ID, fmt.Sprintf("prefix must be at least %d characters", s.config.Server.MinPrefix), codeBadRequest)
	}
	if n > s.config.Server.MaxPrefix {
		return s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", s.config.Server.MaxPrefix), codeBadRequest)
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.config.CLI.DefaultLimit
	}
	if limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}

	start := time.Now()
	suggestions := lookup(req.Prefix, limit)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for prefix '%s'", elapsed, req.Prefix)

	ranks := utils.CreateRankList(len(suggestions))
	out := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = CompletionSuggestion{Word: sg.Word, Rank: ranks[i], Frequency: sg.Frequency}
	}
	return s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleAdd(req Request) error {
	freq := req.Frequency
	if freq == 0 {
		freq = s.config.Dict.DefaultFrequency
	}
	if err := s.completer.AddWord(req.Word, freq); err != nil {
		code := codeInternal
		if errors.Is(err, suggest.ErrEmptyWord) || errors.Is(err, suggest.ErrUntypable) || errors.Is(err, trie.ErrInvalidWeight) ||
			errors.Is(err, trie.ErrFrequencyOverflow) {
			code = codeBadRequest
		}
		return s.sendError(req.ID, err.Error(), code)
	}
	return s.send(StatusResponse{ID: req.ID, Status: "ok"})
}

func (s *Server) send(v any) error {
	if err := s.enc.Encode(v); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	log.Debugf("Request %q failed: %s", id, message)
	return s.send(CompletionError{ID: id, Error: message, Code: code})
}
