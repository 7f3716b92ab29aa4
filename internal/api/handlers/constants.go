package handlers

const (
	maxRequestBodyBytes = 64 << 10
	clipIDHeader        = "X-Clip-ID"
)
