package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"time"

	"sharkpay/api/internal/config"
	"sharkpay/pkg/logsink"

	"github.com/golang-cz/devslog"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Logger prints to the console and ships records to the log sink.
// The zero value (no sink) only prints.
type Logger struct {
	sink *logsink.Client
}

const sendTimeout = 5 * time.Second

func Init(config *config.Config) Logger {
	slogOpts := &slog.HandlerOptions{}

	if !config.Prod_env {
		slogOpts.Level = slog.LevelDebug
	}

	opts := &devslog.Options{
		HandlerOptions:    slogOpts,
		MaxSlicePrintSize: 4,
		SortKeys:          true,
		NewLineAfterLog:   true,
	}

	slog.SetDefault(slog.New(devslog.NewHandler(os.Stdout, opts)))

	if config.LogSink.Address == "" {
		return Logger{}
	}

	conn, err := grpc.NewClient(config.LogSink.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		panic(err)
	}

	return Logger{sink: logsink.NewClient(conn)}
}

// example Info("webhook sent", logsink.LogstreamWebhooks, false, "url", url)
func (l Logger) Info(message string, logStream logsink.Logstream, isTemplate bool, args ...any) {
	l.log(LL_INFO, message, logStream, isTemplate, true, args...)
}

// example Error("link not found", logsink.LogstreamPayments, false, "link_id", id, "error", err.Error())
func (l Logger) Error(message string, logStream logsink.Logstream, isTemplate bool, args ...any) {
	l.log(LL_ERROR, message, logStream, isTemplate, true, args...)
}

// Fatal waits for the sink, the process usually exits right after.
func (l Logger) Fatal(message string, logStream logsink.Logstream, isTemplate bool, args ...any) {
	l.log(LL_FATAL, message, logStream, isTemplate, false, args...)
}

func (l Logger) Debug(message string, args ...any) {
	_, file, line, _ := runtime.Caller(1)

	printLog(LL_DEBUG, message, file, line, args...)
}

func (l Logger) log(ll LogLevel, message string, logStream logsink.Logstream, isTemplate, async bool, args ...any) {
	// log -> Info/Error/Fatal -> caller, templates add one more frame
	skip := 2
	if isTemplate {
		skip = 3
	}

	pc, file, line, _ := runtime.Caller(skip)
	payload, err := formatLog(ll, message, pc, file, line, args...)
	if err != nil {
		fmt.Printf("%s:%d: format log error: %v\n", file, line, err)
		return
	}

	printLog(ll, message, file, line, args...)

	if l.sink == nil {
		return
	}
	if async {
		go sendLog(l.sink, payload, logStream)
		return
	}
	sendLog(l.sink, payload, logStream)
}

func printLog(ll LogLevel, message string, file string, line int, args ...any) {
	args = append(args, "source", file+":"+strconv.Itoa(line))
	switch ll {
	case LL_ERROR, LL_FATAL:
		slog.Error(message, args...)
	case LL_INFO:
		slog.Info(message, args...)
	case LL_DEBUG:
		slog.Debug(message, args...)
	}
}

func sendLog(c *logsink.Client, payload []byte, logstream logsink.Logstream) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := c.SendLog(ctx, logstream, string(payload)); err != nil {
		fmt.Println("Error sending:", err)
	}
}

func formatLog(ll LogLevel, message string, pc uintptr, file string, line int, args ...any) ([]byte, error) {
	var callerFunc string
	if fn := runtime.FuncForPC(pc); fn != nil {
		callerFunc = fn.Name()
	}

	logMessage := LogMessage{
		Message:  message,
		LogLevel: ll.ToString(),
		Time:     time.Now().UTC().Format(time.RFC3339Nano),
		Args:     make(map[string]any),
		Source: Source{
			Function: callerFunc,
			File:     file,
			Line:     line,
		},
		AppInfo: AppInfo{
			Service:   ServiceName,
			Pid:       os.Getpid(),
			GoVersion: runtime.Version(),
		},
	}

	if len(args)%2 != 0 {
		return nil, fmt.Errorf("odd number of args: %d", len(args))
	}

	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return nil, fmt.Errorf("the key must be a string: %v", args[i])
		}
		logMessage.Args[key] = args[i+1]
	}

	return json.Marshal(logMessage)
}

func AnyToStr(t any) string {
	return fmt.Sprintf("%v", t)
}

func GenErrorId() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return NA
	}
	return id.String()
}
