package task

import "errors"

var (
	ErrNotFound            = errors.New("task not found")
	ErrAccessDenied        = errors.New("no access to this task")
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectAccessDenied = errors.New("no access to this project")
)
