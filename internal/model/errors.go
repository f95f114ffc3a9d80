package model

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned on registration with an already used email.
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases must stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingToken means the request carried no auth token at all.
	ErrMissingToken = errors.New("no token, authorization denied")

	// ErrInvalidToken covers malformed, tampered and expired tokens alike.
	ErrInvalidToken = errors.New("token is not valid")

	// ErrNotOwner means the caller tried to modify a resource it does not own.
	ErrNotOwner = errors.New("user not authorized")

	// ErrAlreadyLiked means the caller already liked the post.
	ErrAlreadyLiked = errors.New("post already liked")

	// ErrNotLiked means the caller tried to unlike a post it never liked.
	ErrNotLiked = errors.New("post has not yet been liked")
)

// FieldError describes a single violated constraint on a request field.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// ValidationError carries the ordered list of field violations for a request.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Param+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a field violation, preserving declaration order.
func (e *ValidationError) Add(param, msg string) {
	e.Fields = append(e.Fields, FieldError{Param: param, Msg: msg})
}

// HasErrors reports whether any field was violated.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}
