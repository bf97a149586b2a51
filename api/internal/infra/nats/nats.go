package nats

import (
	"context"
	"time"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/logger"
	"sharkpay/pkg/nats/natsdomain"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

type NatsInfra struct {
	*natsdomain.Ns
}

func Init(config *config.Config, log logger.Logger) *NatsInfra {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	nc, err := nats.Connect(config.Nats.Servers,
		nats.MaxReconnects(100),
		nats.ReconnectWait(3*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.TemplNatsError("disconnected", nc.ConnectedUrl(), err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.TemplNatsInfo("reconnected", nc.ConnectedUrl())
		}))
	if err != nil {
		log.TemplNatsError("connect failed", config.Nats.Servers, err)
		panic("NATS: connect failed: " + err.Error())
	}

	js, err := jetstream.New(nc)
	if err != nil {
		panic(err)
	}

	if _, err := InitWalletStream(ctx, js); err != nil {
		panic("NATS: wallet stream: " + err.Error())
	}

	// the wallet service answers pings, skip the check when it is simulated
	if !config.Testing.Enabled {
		msg, err := nc.Request(natsdomain.SubjPing.String(), []byte("ping"), 5*time.Second)
		if err != nil {
			panic("NATS: ping failed: " + err.Error())
		}
		if string(msg.Data) != "pong" {
			panic("NATS: wrong response")
		}
	}

	log.TemplNatsInfo("connected", nc.ConnectedUrl())
	return &NatsInfra{&natsdomain.Ns{Nc: nc, Js: js}}
}

// InitWalletStream makes sure the stream the wallet publishes payments to exists.
func InitWalletStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       natsdomain.StreamWallet,
		Subjects:   natsdomain.SubjectsJetStream[:],
		Duplicates: 10 * time.Minute,
	})
}

// PaymentsConsumer is the durable consumer of settled payments.
func (n *NatsInfra) PaymentsConsumer(ctx context.Context) (jetstream.Consumer, error) {
	return n.Js.CreateOrUpdateConsumer(ctx, natsdomain.StreamWallet, jetstream.ConsumerConfig{
		Durable:       natsdomain.ConsumerPayments,
		AckPolicy:     jetstream.AckExplicitPolicy,
		FilterSubject: natsdomain.SubjJsPayments.String(),
		AckWait:       30 * time.Second,
	})
}

func (n *NatsInfra) Close() {
	if n == nil || n.Nc == nil {
		return
	}
	n.Nc.Drain()
}
