package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"sharkpay/pkg/nats/natsdomain"
	"sharkpay/pkg/utils"
)

// checks if there is an error in the response. if there is, it returns true and the error message
func HelpersIsError(data []byte) (bool, string) {
	if len(data) < 6 {
		return false, ""
	}

	if string(data[0:6]) == "error:" {
		return true, string(data[6:])
	}
	return false, ""
}

// ReqVerifyAccount asks the wallet whether the account exists and can receive money.
func (n *NatsInfra) ReqVerifyAccount(walletUID string) (*natsdomain.ResVerifyAccount, error) {
	data, err := json.Marshal(natsdomain.ReqVerifyAccount{WalletUID: walletUID})
	if err != nil {
		return nil, err
	}

	resp, err := n.ReqAndRecv(natsdomain.SubjVerifyAccount, data)
	if err != nil {
		return nil, fmt.Errorf("reqAndRecv error: %w", err)
	}

	return ParseVerifyAccount(resp)
}

func ParseVerifyAccount(resp []byte) (*natsdomain.ResVerifyAccount, error) {
	if isError, errmsg := HelpersIsError(resp); isError {
		return nil, errors.New("wallet: " + errmsg)
	}

	msg, err := utils.Unmarshal[natsdomain.ResVerifyAccount](resp)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}
	if msg.IsError {
		return nil, errors.New("wallet: " + msg.Message)
	}
	return msg, nil
}

// PublishPayment is used by the simulator, the wallet publishes the same message in production.
func (n *NatsInfra) PublishPayment(ctx context.Context, payment *natsdomain.PaymentSettled) error {
	data, err := json.Marshal(payment)
	if err != nil {
		return err
	}
	return n.JsPublishMsgId(ctx, natsdomain.SubjJsPayments, data, natsdomain.NewMsgId(payment.TransactionID, natsdomain.MsgActionSimulate))
}
