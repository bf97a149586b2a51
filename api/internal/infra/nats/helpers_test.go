package nats

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

func TestHelpersIsError(t *testing.T) {
	tests := []struct {
		data    []byte
		isValid bool
	}{
		{[]byte(""), false},
		{[]byte("error"), false},
		{[]byte("error:\t\t"), true},
		{[]byte("error:"), true},
		{[]byte("error: "), true},
		{[]byte("error: " + gofakeit.LetterN(100)), true},
		{[]byte("error: " + gofakeit.LetterN(1000<<1)), true},
		{[]byte(`{"Exists":true}`), false},
	}

	for _, i := range tests {
		is, _ := HelpersIsError(i.data)
		if i.isValid != is {
			t.Fatalf("i.isValid != is: %s", string(i.data))
		}
	}
}

func TestParseVerifyAccount(t *testing.T) {
	res, err := ParseVerifyAccount([]byte(`{"Exists":true,"Frozen":false,"DisplayName":"Shark"}`))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Exists || res.Frozen || res.DisplayName != "Shark" {
		t.Fatalf("unexpected %+v", res)
	}

	if _, err := ParseVerifyAccount([]byte("error: wallet db down")); err == nil {
		t.Fatal("error prefix ignored")
	}
	if _, err := ParseVerifyAccount([]byte(`{"IsError":true,"Message":"boom"}`)); err == nil {
		t.Fatal("error payload ignored")
	}
	if _, err := ParseVerifyAccount([]byte("{")); err == nil {
		t.Fatal("broken json accepted")
	}
}
