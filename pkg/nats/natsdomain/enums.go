package natsdomain

type ActionType string

const (
	// wallet -> gateway
	MsgActionPayment ActionType = "payment"
	// gateway -> gateway (testing mode)
	MsgActionSimulate ActionType = "simulate"
)

type PaymentType string

const (
	PaymentSharkPay       PaymentType = "SHARK_PAY"
	PaymentUpgradeInvoice PaymentType = "UPGRADE_INVOICE"
)

// streams and consumers owned by the wallet service
const (
	StreamWallet     = "wallet"
	ConsumerPayments = "gateway_payments"
)

// .js. - jetstream
var SubjectsJetStream = [...]string{"wallet.js.payments"}

// .core. - nats core
var Subjects = [...]string{"wallet.core.ping", "wallet.core.verify_account"}

type SubjType uint8
type SubjJsType uint8

// nats core subjects
const (
	SubjPing SubjType = iota
	SubjVerifyAccount
)

// nats jetstream subjects
const (
	SubjJsPayments SubjJsType = iota
)

func (s SubjType) String() string {
	return Subjects[s]
}

func (s SubjJsType) String() string {
	return SubjectsJetStream[s]
}
