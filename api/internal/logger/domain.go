package logger

type Source struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

type AppInfo struct {
	Service   string `json:"service"`
	Pid       int    `json:"pid"`
	GoVersion string `json:"go_version"`
}

// service name attached to every shipped record
const ServiceName = "sharkpay-api"

type LogMessage struct {
	Message  string         `json:"message"`
	LogLevel string         `json:"log_level"`
	Time     string         `json:"time"`
	Args     map[string]any `json:"args,omitempty"`
	Source   Source         `json:"source"`
	AppInfo  AppInfo        `json:"app_info"`
}

const NA = "N/A"

type LogLevel uint8

// log level
const (
	LL_ERROR LogLevel = iota
	LL_FATAL
	LL_INFO
	LL_DEBUG
)

func (l LogLevel) ToString() string {
	return [...]string{"ERROR", "FATAL", "INFO", "DEBUG"}[l]
}
