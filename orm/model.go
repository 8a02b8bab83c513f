package orm

import (
	contracts "github.com/djrtwo/simple-contracts"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	contracts.Persistent
	Validate() error
}

// ModelSlicePtr is a pointer to a slice of models, either of values or of
// pointers, ie. *[]Agreement or *[]*Agreement.
type ModelSlicePtr interface{}
