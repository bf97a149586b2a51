package logsink

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

type recorder struct {
	mu   sync.Mutex
	got  map[Logstream][]string
	fail bool
}

func (r *recorder) SendLog(_ context.Context, logstream Logstream, payload string) error {
	if r.fail {
		return errors.New("parseable down")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got[logstream] = append(r.got[logstream], payload)
	return nil
}

func startSink(t *testing.T, rec *recorder) *Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterServer(srv, rec)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	cc, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cc.Close() })

	return NewClient(cc)
}

func TestSendLog(t *testing.T) {
	rec := &recorder{got: map[Logstream][]string{}}
	client := startSink(t, rec)

	if err := client.SendLog(context.Background(), LogstreamPayments, `{"msg":"paid"}`); err != nil {
		t.Fatal(err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.got[LogstreamPayments]) != 1 || rec.got[LogstreamPayments][0] != `{"msg":"paid"}` {
		t.Fatalf("unexpected payloads: %v", rec.got)
	}
}

func TestSendLogErrors(t *testing.T) {
	rec := &recorder{got: map[Logstream][]string{}, fail: true}
	client := startSink(t, rec)

	if err := client.SendLog(context.Background(), LogstreamFatal, "x"); err == nil {
		t.Fatal("expected sink error")
	}
	if err := client.SendLog(context.Background(), Logstream("nope"), "x"); err == nil {
		t.Fatal("expected unknown logstream error")
	}
}

func TestParseLogstream(t *testing.T) {
	for _, l := range Logstreams {
		got, ok := ParseLogstream(l.String())
		if !ok || got != l {
			t.Fatalf("%s not parsed", l)
		}
	}
	if _, ok := ParseLogstream("invoices"); ok {
		t.Fatal("unknown stream parsed")
	}
}
