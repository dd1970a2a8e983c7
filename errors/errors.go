package errors

import "fmt"

var (
	ErrNoTranscript     = fmt.Errorf("no transcript text found in upload")
	ErrNoTextEntry      = fmt.Errorf("archive contains no text entry")
	ErrNoImages         = fmt.Errorf("no supported image types found")
	ErrNoDocuments      = fmt.Errorf("no pdf documents found in upload")
	ErrNoValidDocuments = fmt.Errorf("no valid pdf documents to merge")
	ErrEmptyRender      = fmt.Errorf("rendering engine returned no output")
)
