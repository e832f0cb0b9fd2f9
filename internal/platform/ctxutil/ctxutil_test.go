package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRequestDataRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id})
	if got := UserID(ctx); got != id {
		t.Fatalf("UserID: want=%s got=%s", id, got)
	}
	if got := UserID(context.Background()); got != uuid.Nil {
		t.Fatalf("UserID on bare ctx: got=%s", got)
	}
	if GetRequestData(nil) != nil {
		t.Fatal("nil ctx should yield nil request data")
	}
}

func TestTraceLogFields(t *testing.T) {
	if LogFields(context.Background()) != nil {
		t.Fatal("expected no fields without trace data")
	}
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t1", RequestID: "r1"})
	fields := LogFields(ctx)
	if len(fields) != 4 || fields[1] != "t1" || fields[3] != "r1" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}
