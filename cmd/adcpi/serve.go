package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog"

	"github.com/cgxeiji/adcpi"
	"github.com/cgxeiji/adcpi/mcp342x"
)

// server exposes a board over HTTP. Every handler holds mu while it talks to
// the board.
type server struct {
	mu  sync.Mutex
	b   *board
	log zerolog.Logger
}

type voltageResponse struct {
	Channel int     `json:"channel"`
	Voltage float64 `json:"voltage"`
}

type rawResponse struct {
	Channel  int  `json:"channel"`
	Raw      int  `json:"raw"`
	Negative bool `json:"negative"`
}

type differentialResponse struct {
	A       int     `json:"a"`
	B       int     `json:"b"`
	Voltage float64 `json:"voltage"`
}

// configRequest changes the board settings. Missing fields are left as they
// are.
type configRequest struct {
	Resolution *int `json:"resolution"`
	Gain       *int `json:"gain"`
}

func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/channels/{ch}", s.voltage)
	r.Get("/channels/{ch}/raw", s.raw)
	r.Get("/differential/{a}/{b}", s.differential)
	r.Get("/config", s.getConfig)
	r.Put("/config", s.putConfig)

	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func (s *server) voltage(w http.ResponseWriter, r *http.Request) {
	ch, err := channelParam(r, "ch")
	if err != nil {
		s.fail(w, err)
		return
	}

	s.mu.Lock()
	v, err := s.b.ReadVoltage(ch)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}

	s.reply(w, voltageResponse{Channel: ch, Voltage: v})
}

func (s *server) raw(w http.ResponseWriter, r *http.Request) {
	ch, err := channelParam(r, "ch")
	if err != nil {
		s.fail(w, err)
		return
	}

	s.mu.Lock()
	raw, negative, err := s.b.ReadRaw(ch)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}

	s.reply(w, rawResponse{Channel: ch, Raw: raw, Negative: negative})
}

func (s *server) differential(w http.ResponseWriter, r *http.Request) {
	a, err := channelParam(r, "a")
	if err != nil {
		s.fail(w, err)
		return
	}
	b, err := channelParam(r, "b")
	if err != nil {
		s.fail(w, err)
		return
	}

	s.mu.Lock()
	v, err := s.b.readDifferential(a, b)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}

	s.reply(w, differentialResponse{A: a, B: b, Voltage: v})
}

func (s *server) getConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := s.b.State()
	s.mu.Unlock()

	s.reply(w, st)
}

func (s *server) putConfig(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var opts []adcpi.Option
	if req.Resolution != nil {
		if _, err := mcp342x.ParseResolution(*req.Resolution); err != nil {
			s.fail(w, err)
			return
		}
		opts = append(opts, adcpi.Resolution(*req.Resolution))
	}
	if req.Gain != nil {
		if _, err := mcp342x.ParseGain(*req.Gain); err != nil {
			s.fail(w, err)
			return
		}
		opts = append(opts, adcpi.Gain(*req.Gain))
	}

	s.mu.Lock()
	_, err := s.b.Options(opts...)
	st := s.b.State()
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}

	s.log.Info().Int("resolution", st.Resolution).Int("gain", st.Gain).Msg("configured board")
	s.reply(w, st)
}

func channelParam(r *http.Request, name string) (int, error) {
	ch, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, adcpi.ErrInvalidArgument
	}
	return ch, nil
}

func (s *server) reply(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("could not encode response")
	}
}

func (s *server) fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, adcpi.ErrInvalidArgument):
		code = http.StatusBadRequest
	case errors.Is(err, errSingleEnded):
		code = http.StatusConflict
	case errors.Is(err, adcpi.ErrConversionTimeout):
		code = http.StatusGatewayTimeout
	case errors.Is(err, adcpi.ErrBus):
		code = http.StatusBadGateway
	}
	if code >= http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("board request failed")
	}
	http.Error(w, err.Error(), code)
}
