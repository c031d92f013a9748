package types

// SuccessEnvelope wraps every JSON success body.
type SuccessEnvelope struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// ComputeMeta echoes the parameters a computed table was built with.
type ComputeMeta struct {
	Qty   int      `json:"qty"`
	Lines []string `json:"lines"`
	Rows  int      `json:"rows"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
