package logger

import "testing"

func TestRedactorMasksSecretsAndHashesUserIDs(t *testing.T) {
	r := redactor{enabled: true, salt: "pepper"}

	out := r.kvs([]interface{}{
		"access_token", "abc",
		"user_id", "7f0c",
		"path", "/assets",
		"dangling",
	})
	if len(out) != 7 {
		t.Fatalf("unexpected length: got=%d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("token not redacted: got=%v", out[1])
	}
	hashed, ok := out[3].(string)
	if !ok || len(hashed) != len("hash:")+12 {
		t.Fatalf("user_id not hashed: got=%v", out[3])
	}
	if out[5] != "/assets" {
		t.Fatalf("plain value changed: got=%v", out[5])
	}
	if out[6] != "dangling" {
		t.Fatalf("odd trailing key dropped: got=%v", out[6])
	}
}

func TestRedactorDisabledPassesThrough(t *testing.T) {
	r := redactor{}
	in := []interface{}{"password", "hunter2"}
	out := r.kvs(in)
	if out[1] != "hunter2" {
		t.Fatalf("disabled redactor should not touch values: got=%v", out[1])
	}
}

func TestRedactorCatchesBareJWT(t *testing.T) {
	r := redactor{enabled: true}
	jwtish := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig"
	out := r.kvs([]interface{}{"header", jwtish})
	if out[1] != "[REDACTED]" {
		t.Fatalf("jwt-looking value not redacted: got=%v", out[1])
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := NewWithOptions(Options{Mode: "development", Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
