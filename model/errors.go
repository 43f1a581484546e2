package model

import "errors"

var (
	ErrEmptyLabel   = errors.New("label is empty")
	ErrStepNotFound = errors.New("step do not exist")
	ErrBuiltinStep  = errors.New("built-in step cannot be deleted")
	ErrUnknownUser  = errors.New("user do not exist")
)
