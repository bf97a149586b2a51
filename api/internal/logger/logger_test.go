package logger

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/google/uuid"
)

func TestAnyToStr(t *testing.T) {
	tests := []struct {
		T    any
		TStr string
	}{
		{10, "10"},
		{-10, "-10"},
		{true, "true"},
		{"test", "test"},
		{"", ""},
		{nil, "<nil>"},
		{struct{}{}, "{}"},
		{struct {
			Z string
			F int
		}{"test", 10}, "{test 10}"},
		{[]int{1, 2, 3}, "[1 2 3]"},
	}

	for _, x := range tests {
		if res := AnyToStr(x.T); x.TStr != res {
			t.Fatalf("failed: %s != %s", x.TStr, res)
		}
	}
}

func TestFormatLog(t *testing.T) {
	pc, file, line, _ := runtime.Caller(0)

	b, err := formatLog(LL_ERROR, "payment rejected", pc, file, line, "link_id", "l1", "attempt", 2)
	if err != nil {
		t.Fatal(err)
	}

	var msg LogMessage
	if err := json.Unmarshal(b, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.LogLevel != "ERROR" || msg.Message != "payment rejected" {
		t.Fatalf("unexpected message %+v", msg)
	}
	if msg.Args["link_id"] != "l1" || msg.Args["attempt"] != float64(2) {
		t.Fatalf("args %v", msg.Args)
	}
	if msg.Source.Line != line || msg.AppInfo.Pid == 0 || msg.AppInfo.Service != ServiceName || msg.Time == "" {
		t.Fatalf("source %+v app %+v", msg.Source, msg.AppInfo)
	}

	if _, err := formatLog(LL_INFO, "x", pc, file, line, 1, "v"); err == nil {
		t.Fatal("non-string key accepted")
	}
	if _, err := formatLog(LL_INFO, "x", pc, file, line, "dangling"); err == nil {
		t.Fatal("odd args accepted")
	}
}

func TestGenErrorId(t *testing.T) {
	if _, err := uuid.Parse(GenErrorId()); err != nil {
		t.Fatal(err)
	}
	if LL_FATAL.ToString() != "FATAL" {
		t.Fatal(LL_FATAL.ToString())
	}
}

func TestLoggerWithoutSink(t *testing.T) {
	var l Logger
	l.Info("no sink", "payments", false, "k", "v")
	l.Error("no sink", "payments", false, "k", "v")
	l.TemplWebhookErr("webhook failed", "http://x", 1, "none", []byte("{}"))
}
