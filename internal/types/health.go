package types

// Health is the body of GET /health and GET /health/{path_echo}.
// Echo and PathEcho are returned verbatim, or null when not supplied.
type Health struct {
	Status        int     `json:"status"`
	StatusMessage string  `json:"status_message"`
	Timestamp     string  `json:"timestamp"`
	IPAddress     string  `json:"ip_address"`
	Echo          *string `json:"echo"`
	PathEcho      *string `json:"path_echo"`
}
