package runorder

import "errors"

var (
	ErrShowNotFound        = errors.New("show not found")
	ErrSketchNotFound      = errors.New("sketch not found")
	ErrPerformerNotFound   = errors.New("character performer not found")
	ErrTechDetailsNotFound = errors.New("tech details not found")
)
