package config

// Error reports a configuration-kind failure: an
// out-of-range parameter or an unknown template/proteolysis code.
// Callers surface it to the user and terminate the run - configuration
// errors are never retried or worked around.
type Error struct {
	Field string
	Msg   string
}

func (e *Error) Error() string {
	return "config: " + e.Field + ": " + e.Msg
}
