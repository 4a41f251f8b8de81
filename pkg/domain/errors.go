package domain

import (
	"errors"
	"strings"
)

// ErrorKind classifies a fatal failure.
type ErrorKind int

const (
	// KindOther covers fatal failures the bootstrap does not classify further.
	KindOther ErrorKind = iota
	// KindConfig is a bad, missing or unreadable configuration (including empty stdin).
	KindConfig
	// KindBlock is a failure attributable to one spawned block.
	KindBlock
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindBlock:
		return "block"
	default:
		return "other"
	}
}

// BlockRef identifies a spawned block: its position in the bar and its kind.
type BlockRef struct {
	ID   int
	Name string
}

// Error is the fatal error value that flows up to the crash recovery supervisor.
// Message may be empty, which is distinct from a read failure (see ConfigError).
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
	Block   *BlockRef
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Block != nil {
		b.WriteString("Error in block '")
		b.WriteString(e.Block.Name)
		b.WriteString("': ")
	} else {
		b.WriteString("Error: ")
	}
	if e.Kind == KindConfig {
		b.WriteString("Configuration error: ")
	}
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString("Error")
	}
	if e.Cause != nil {
		b.WriteString(". (Cause: ")
		b.WriteString(e.Cause.Error())
		b.WriteString(")")
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ConfigError builds a Config-kind error. An empty message is allowed.
func ConfigError(message string, cause error) *Error {
	return &Error{Kind: KindConfig, Message: message, Cause: cause}
}

// BlockError builds a Block-kind error tagged with the originating block.
func BlockError(ref BlockRef, message string, cause error) *Error {
	return &Error{Kind: KindBlock, Message: message, Cause: cause, Block: &ref}
}

// TagBlock attributes err to the block ref. Errors already carrying a block
// are returned unchanged; other domain errors keep their kind; foreign errors
// become Block errors whose message is the error text.
func TagBlock(ref BlockRef, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		if e.Block != nil {
			return e
		}
		tagged := *e
		tagged.Block = &ref
		return &tagged
	}
	return &Error{Kind: KindBlock, Message: err.Error(), Block: &ref}
}

// Wrap builds an unclassified fatal error.
func Wrap(message string, cause error) *Error {
	return &Error{Kind: KindOther, Message: message, Cause: cause}
}

// AsError returns err as a *Error, wrapping foreign errors as KindOther.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindOther, Message: err.Error()}
}

// KindOf reports the classification of err.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}
