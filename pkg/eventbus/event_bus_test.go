package eventbus

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

type args struct {
	data interface{}
}

func newBufferedLogger(level logrus.Level) (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(level)
	return log, buf
}

func TestPublisher_Publish(t *testing.T) {
	type args2 struct {
		data interface{}
	}
	log, logBuffer := newBufferedLogger(logrus.WarnLevel)
	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *args) {
		t.Error("should not be called")
	})
	publisher.Publish(&args2{
		data: "test",
	})

	if output := logBuffer.String(); output == "" {
		t.Error("should have logged")
	} else if !strings.Contains(output, "eventbus.Publish: no matching subscribers") {
		t.Errorf("should have contained no matching subscribers but got: %q", output)
	}
}

func TestPublisher_Subscribe(t *testing.T) {
	log, _ := newBufferedLogger(logrus.WarnLevel)
	publisher := NewEventPublisher(log)
	called := false
	var data interface{}
	publisher.Subscribe(func(e *args) {
		called = true
		data = e.data
	})
	publisher.Publish(&args{
		data: "test",
	})
	if !called {
		t.Error("should be called")
	}
	if data != "test" {
		t.Errorf("expected: %v, got: %v", "test", data)
	}
}

func TestPublisher_Unsubscribe(t *testing.T) {
	log, _ := newBufferedLogger(logrus.PanicLevel)
	publisher := NewEventPublisher(log)
	handler := func(e *args) {
		t.Error("should not be called after unsubscribe")
	}
	publisher.Subscribe(handler)
	if publisher.SubscribersCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", publisher.SubscribersCount())
	}
	publisher.Unsubscribe(handler)
	if publisher.SubscribersCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", publisher.SubscribersCount())
	}
	publisher.Publish(&args{})
}

func TestMatchSignature(t *testing.T) {
	type args struct {
	}
	type args2 struct {
	}
	if !MatchSignature(func(e *args) {}, []interface{}{&args{}}) {
		t.Error("expected true")
	}
	if MatchSignature(func(e *args) {}, []interface{}{&args2{}}) {
		t.Error("expected false")
	}
	if MatchSignature(func(e *args) {}, []interface{}{}) {
		t.Error("expected false")
	}
	if MatchSignature(func(e *args) {}, []interface{}{&args{}, &args{}}) {
		t.Error("expected false")
	}

	if !MatchSignature(func(ctx context.Context) {}, []interface{}{context.Background()}) {
		t.Error("expected true")
	}
}

func TestPublisher_PanicRecovery(t *testing.T) {
	log, logBuffer := newBufferedLogger(logrus.ErrorLevel)
	publisher := NewEventPublisher(log)

	publisher.Subscribe(func(e *args) {
		panic("intentional panic for testing")
	})
	afterCalled := false
	publisher.Subscribe(func(e *args) {
		afterCalled = true
	})

	publisher.Publish(&args{data: "test"})

	if !afterCalled {
		t.Error("later subscribers should still run after a panicking handler")
	}
	if output := logBuffer.String(); !strings.Contains(output, "panicked") {
		t.Errorf("expected panic to be logged, got: %q", output)
	}
}
