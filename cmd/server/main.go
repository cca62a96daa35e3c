// Command server exposes the substring search engine over HTTP: add a
// source, search every source for a substring, fetch a source's raw
// bytes or a clamped character slice, and list registered names.
//
// Grounded on the teacher library's cmd/server/main.go: same fasthttp
// server setup (flags, graceful shutdown on SIGINT/SIGTERM, a single
// requestHandler routing by path, JSON helpers), routes and calculators
// replaced with the five core operations.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/baditaflorin/go_substring_search/internal/warmup"
	"github.com/baditaflorin/go_substring_search/pkg/search"
	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"
)

const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 64 * 1024 * 1024
	DefaultConcurrency    = 0
)

var (
	engine *search.Engine
	logger l.Logger
)

// AddSourceResponse is returned from POST /sources.
type AddSourceResponse struct {
	Name string `json:"name"`
}

// SearchResponse is returned from GET /search.
type SearchResponse struct {
	Query   string           `json:"query"`
	Results map[string][]int `json:"results"`
}

// SliceResponse is returned from GET /slice.
type SliceResponse struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// StatsResponse is returned from GET /health.
type StatsResponse struct {
	Status        string `json:"status"`
	SourceCount   int    `json:"source_count"`
	ContentBytes  int64  `json:"content_bytes"`
	IndexedWords  int    `json:"indexed_words"`
	CachedQueries int    `json:"cached_queries"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent connections (0 = fasthttp default)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	cacheDisabled := flag.Bool("cache-disabled", false, "Disable the query result cache")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("starting substring search HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	opts := []search.Option{search.WithLogger(logger)}
	if *cacheDisabled {
		opts = append(opts, search.WithCacheDisabled())
	}
	if *warmUp {
		opts = append(opts, search.WithWarmUp(warmup.DefaultConfig()))
	}

	engine, err = search.New(opts...)
	if err != nil {
		logger.Error("failed to initialize engine", "error", err)
		os.Exit(1)
	}

	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("shutting down server")
		if err := server.Shutdown(); err != nil {
			logger.Error("error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("server stopped")
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "SubstringSearchServer")

	path := string(ctx.Path())
	switch {
	case path == "/health":
		handleHealth(ctx)
	case path == "/sources" && ctx.IsPost():
		handleAddSource(ctx)
	case path == "/sources" && ctx.IsGet():
		handleListNames(ctx)
	case path == "/search":
		handleSearch(ctx)
	case path == "/slice":
		handleSlice(ctx)
	case strings.HasPrefix(path, "/source/"):
		handleGetSource(ctx, strings.TrimPrefix(path, "/source/"))
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "not found")
	}

	logger.Info("request processed",
		"method", string(ctx.Method()),
		"path", path,
		"status", ctx.Response.StatusCode(),
		"duration", time.Since(start),
	)
}

func handleHealth(ctx *fasthttp.RequestCtx) {
	stats := engine.Stats()
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, StatsResponse{
		Status:        "ok",
		SourceCount:   stats.SourceCount,
		ContentBytes:  stats.ContentBytes,
		IndexedWords:  stats.IndexedWords,
		CachedQueries: stats.CachedQueries,
	})
}

func handleAddSource(ctx *fasthttp.RequestCtx) {
	name := string(ctx.QueryArgs().Peek("name"))
	if name == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "missing name query parameter")
		return
	}

	if err := engine.AddSource(name, bytes.NewReader(ctx.PostBody())); err != nil {
		ctx.SetStatusCode(fasthttp.StatusConflict)
		writeJSONError(ctx, err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusCreated)
	writeJSONResponse(ctx, AddSourceResponse{Name: name})
}

func handleListNames(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, engine.ListNames())
}

func handleSearch(ctx *fasthttp.RequestCtx) {
	query := string(ctx.QueryArgs().Peek("q"))
	if query == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "missing q query parameter")
		return
	}

	result := engine.Search(query)
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, SearchResponse{Query: query, Results: result})
}

func handleSlice(ctx *fasthttp.RequestCtx) {
	name := string(ctx.QueryArgs().Peek("name"))
	from, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("from")))
	length, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("length")))

	text, ok := engine.GetSlice(name, from, length)
	if !ok {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "no such source")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, SliceResponse{Name: name, Text: text})
}

func handleGetSource(ctx *fasthttp.RequestCtx, name string) {
	r, ok := engine.GetSource(name)
	if !ok {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "no such source")
		return
	}

	data, err := io.ReadAll(r)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "error reading source")
		return
	}

	ctx.Response.Header.Set("Content-Type", "application/octet-stream")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(data)
}

func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("error marshaling JSON response", "error", err)
		writeJSONError(ctx, "internal server error")
		return
	}
	ctx.SetBody(response)
}

func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetBodyString(`{"error":"internal server error"}`)
		return
	}
	ctx.SetBody(response)
}

func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,
		MaxFileSize: 100 * 1024 * 1024,
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
