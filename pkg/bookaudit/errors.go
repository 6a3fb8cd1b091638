package bookaudit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// trustPolicyPhrase is the host application's message when its security
// policy forbids programmatic access to the VBA project. The automation
// interface exposes no structured code for this condition, so the message
// text is matched as a fallback; the phrase is locale-dependent.
const trustPolicyPhrase = "Programmatic access to Visual Basic Project is not trusted"

// TrustPolicyMessage is the clarified message recorded when macro access is
// denied by the host's trust settings.
const TrustPolicyMessage = "VBA access not enabled in Excel Trust Center"

// VBAError represents a macro-extraction failure.
type VBAError struct {
	// Stage names the extraction step that failed: "session", "open",
	// or "components".
	Stage string
	Err   error
}

func (e *VBAError) Error() string {
	return fmt.Sprintf("vba extraction (%s): %v", e.Stage, e.Err)
}

func (e *VBAError) Unwrap() error {
	return e.Err
}

// ClassifyVBAError renders a macro-extraction failure as the human-readable
// message recorded on the analysis result.
func ClassifyVBAError(err error) string {
	if err == nil {
		return ""
	}
	if strings.Contains(err.Error(), trustPolicyPhrase) {
		return TrustPolicyMessage
	}
	return err.Error()
}
