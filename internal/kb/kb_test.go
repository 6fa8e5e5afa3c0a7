package kb

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeClient counts lookups and returns scripted answers.
type fakeClient struct {
	valid bool
	err   error
	calls int
}

func (f *fakeClient) Lookup(ctx context.Context, name, kind string) (bool, error) {
	f.calls++
	return f.valid, f.err
}

func TestValidateNilClient(t *testing.T) {
	v := NewValidator(nil, nil)
	if !v.Validate(context.Background(), "daniel day-lewis", "person") {
		t.Error("nil client must assume valid")
	}
}

func TestValidateFailOpen(t *testing.T) {
	client := &fakeClient{err: errors.New("service down")}
	v := NewValidator(client, nil)

	if !v.Validate(context.Background(), "daniel day-lewis", "person") {
		t.Error("lookup error must assume valid")
	}
	if client.calls != 1 {
		t.Errorf("calls = %d, expected 1", client.calls)
	}
}

func TestValidateCachesAnswers(t *testing.T) {
	client := &fakeClient{valid: false}
	v := NewValidator(client, nil, WithTTL(time.Minute))

	first := v.Validate(context.Background(), "not a person", "person")
	second := v.Validate(context.Background(), "not a person", "person")

	if first || second {
		t.Error("successful rejection must be honored")
	}
	if client.calls != 1 {
		t.Errorf("calls = %d, expected cached second lookup", client.calls)
	}
}

func TestValidateCacheExpires(t *testing.T) {
	client := &fakeClient{valid: true}
	v := NewValidator(client, nil, WithTTL(-time.Second))

	v.Validate(context.Background(), "amy poehler", "person")
	v.Validate(context.Background(), "amy poehler", "person")

	if client.calls != 2 {
		t.Errorf("calls = %d, expected expired entry to re-fetch", client.calls)
	}
}

func TestValidateCancelledContext(t *testing.T) {
	client := &fakeClient{valid: false}
	v := NewValidator(client, nil, WithRateLimit(0.0001, 1))

	ctx, cancel := context.WithCancel(context.Background())
	v.Validate(ctx, "first", "person")
	cancel()

	// Second call blocks on the limiter and must fail open on cancellation.
	if !v.Validate(ctx, "second", "person") {
		t.Error("cancelled limiter wait must assume valid")
	}
}
