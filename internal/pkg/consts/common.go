package consts

const (
	MimePrefixImage = "image/"
)

const (
	TraceHeader = "X-Trace-ID"
)
