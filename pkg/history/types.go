package history

import "time"

// Invocation is one journal row.
type Invocation struct {
	// ID is the invocation's unique identifier.
	ID string `json:"id"`

	// Argv is the exact command vector executed.
	Argv []string `json:"argv"`

	// RC is the subprocess exit code.
	RC int `json:"rc"`

	// Changed and Failed carry the classified verdict.
	Changed bool `json:"changed"`
	Failed  bool `json:"failed"`

	// Facts is the number of facts extracted.
	Facts int `json:"facts"`

	// Duration is the subprocess wall time.
	Duration time.Duration `json:"duration"`

	// CreatedAt is when the invocation completed.
	CreatedAt time.Time `json:"created_at"`
}
