package custody

import (
	"context"
	"fmt"
	"regexp"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

type contextKey int // local to the custody module

const (
	contextKeyHeader contextKey = iota
	contextKeyHeight
	contextKeyChainID
	contextKeyLogger
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeader sets the block header for the Context.
// panics if called with header already set
func WithHeader(ctx Context, header abci.Header) Context {
	if _, ok := GetHeader(ctx); ok {
		panic("Header already set")
	}
	return context.WithValue(ctx, contextKeyHeader, header)
}

// GetHeader returns the current block header
// ok is false if no header set in this Context
func GetHeader(ctx Context) (abci.Header, bool) {
	val, ok := ctx.Value(contextKeyHeader).(abci.Header)
	return val, ok
}

// WithHeight sets the block height for the Context.
// panics if called with height already set
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height
// ok is false if no height set in this Context
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// BlockTime returns the time of the block as declared by the header.
// ok is false if no header is set.
func BlockTime(ctx Context) (time.Time, bool) {
	h, ok := GetHeader(ctx)
	if !ok {
		return time.Time{}, false
	}
	return h.Time, true
}

// WithChainID sets the chain id for the Context.
// panics if called with chain id already set
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set")
	}
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("Invalid chain ID: %s", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id
// panics if chain id not already set (should never happen)
func GetChainID(ctx Context) string {
	if x := ctx.Value(contextKeyChainID); x == nil {
		panic("Chain ID not present")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithLogger sets the logger for this context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
