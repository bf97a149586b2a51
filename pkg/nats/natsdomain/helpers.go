package natsdomain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	reqRetries = 4
	reqTimeout = 7 * time.Second
)

func (ns *Ns) JsPublish(ctx context.Context, subj SubjJsType, jsonMsg []byte) error {
	return ns.jsPublishOpts(ctx, subj, jsonMsg)
}

// jetstream publish with msgId, duplicates inside the stream window are dropped by the server
func (ns *Ns) JsPublishMsgId(ctx context.Context, subj SubjJsType, jsonMsg []byte, msgId string) error {
	return ns.jsPublishOpts(ctx, subj, jsonMsg, jetstream.WithMsgID(msgId))
}

func (ns *Ns) jsPublishOpts(ctx context.Context, subj SubjJsType, jsonMsg []byte, opts ...jetstream.PublishOpt) error {
	_, err := ns.Js.Publish(ctx, subj.String(), jsonMsg, opts...)
	return err
}

// nats core request/reply with retries
func (ns *Ns) ReqAndRecv(subject SubjType, jsonMsg []byte) ([]byte, error) {
	var err error
	var response *nats.Msg

	for attempt := 0; attempt < reqRetries; attempt++ {
		response, err = ns.Nc.Request(subject.String(), jsonMsg, reqTimeout)
		if err == nil {
			break
		}
		if errors.Is(err, nats.ErrNoResponders) {
			return nil, err
		}
	}

	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, fmt.Errorf("unknown error: data == nil && err == nil")
	}
	return response.Data, nil
}

// for nats jetstream
func NewMsgId(id string, action ActionType) string {
	return id + "_" + string(action)
}
