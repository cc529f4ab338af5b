package nbmd

import (
	"errors"

	"github.com/alnah/go-nbmd/internal/notebook"
	"github.com/alnah/go-nbmd/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput           = errors.New("input content cannot be empty")
	ErrInputNotFound        = errors.New("input file not found")
	ErrUnsupportedExtension = errors.New("unsupported input extension")
	ErrWriteOutput          = errors.New("failed to write output")

	// ErrMalformedDocument reports a notebook that is not a JSON object
	// with a cells list, or whose nbformat major version is below 4.
	ErrMalformedDocument = notebook.ErrMalformed

	// ErrHTMLPreview reports a failure rendering the optional HTML page.
	ErrHTMLPreview = pipeline.ErrHTMLPreview
)
