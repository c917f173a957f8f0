package main

// Exit codes.
const (
	ExitSuccess = 0 // Success
	ExitError   = 1 // Any failure: translated API errors, I/O errors, bad flags
)
