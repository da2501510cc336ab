package internal

const (
	COOKIE_SESSION_NAME = "aidconnect_session"
)
