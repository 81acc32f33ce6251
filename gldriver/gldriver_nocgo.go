//go:build tinygo || !cgo

package gldriver

import "errors"

var errNoCGO = errors.New("gldriver: OpenGL requires CGo and is not supported on TinyGo")

// Init returns an error: OpenGL is unavailable without cgo.
func Init() error { return errNoCGO }

// Driver is unavailable without cgo.
type Driver struct{}

// New returns an error: OpenGL is unavailable without cgo.
func New() (*Driver, error) { return nil, errNoCGO }
