package project

import "errors"

var (
	ErrNotFound     = errors.New("project not found")
	ErrAccessDenied = errors.New("no access to this project")
)
