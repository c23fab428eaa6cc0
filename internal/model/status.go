package model

// FetchStatus represents the lifecycle state of a screen's catalog request
type FetchStatus string

const (
	// FetchStatusIdle means nothing has been requested yet
	FetchStatusIdle FetchStatus = "Idle"

	// FetchStatusLoading means the first request is in flight
	FetchStatusLoading FetchStatus = "Loading"

	// FetchStatusRefreshing means a request is in flight over a settled result
	FetchStatusRefreshing FetchStatus = "Refreshing"

	// FetchStatusReady means the last relevant request succeeded
	FetchStatusReady FetchStatus = "Ready"

	// FetchStatusFailed means the last relevant request failed
	FetchStatusFailed FetchStatus = "Failed"
)

// String returns the string representation of FetchStatus
func (fs FetchStatus) String() string {
	return string(fs)
}

// IsBusy returns true if a request is in flight
func (fs FetchStatus) IsBusy() bool {
	return fs == FetchStatusLoading || fs == FetchStatusRefreshing
}

// IsSettled returns true if the state holds a final outcome (ready or failed)
func (fs FetchStatus) IsSettled() bool {
	return fs == FetchStatusReady || fs == FetchStatusFailed
}

// ErrorKind classifies a failed fetch or a rejected query
type ErrorKind string

const (
	ErrorKindNone               ErrorKind = ""
	ErrorKindNetworkUnavailable ErrorKind = "NetworkUnavailable"
	ErrorKindServerError        ErrorKind = "ServerError"
	ErrorKindMalformed          ErrorKind = "Malformed"
	ErrorKindInvalidSort        ErrorKind = "InvalidSort"
	ErrorKindInvalidQuery       ErrorKind = "InvalidQuery"
)

// Message keys shown to the user for failed states
const (
	MessageNoItems    = "no_items_found"
	MessageNoInternet = "no_internet"
)

// String returns the string representation of ErrorKind
func (ek ErrorKind) String() string {
	return string(ek)
}

// UserMessageKey returns the localization key presented for this kind.
// ServerError and Malformed are indistinguishable to the user.
func (ek ErrorKind) UserMessageKey() string {
	if ek == ErrorKindNetworkUnavailable {
		return MessageNoInternet
	}
	return MessageNoItems
}
