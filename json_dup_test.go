package sensorcheck

import (
	"errors"
	"testing"
)

func TestDetectJSONDuplicateKeysBytes_NoDup(t *testing.T) {
	js := []byte(`{"a":1,"b":{"a":2}}`)
	iss, err := DetectJSONDuplicateKeysBytes(js, -1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("expected 0 issues, got %d: %v", len(iss), iss)
	}
}

func TestDetectJSONDuplicateKeysBytes_WithDup(t *testing.T) {
	js := []byte(`{"net":{"ip":"a","ip":"b"},"net":{}}`)
	iss, err := DetectJSONDuplicateKeysBytes(js, -1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 2 {
		t.Fatalf("expected 2 duplicate_key issues, got %v", iss)
	}
	if iss[0].Code != CodeDuplicateKey || iss[0].Path != "/net/ip" || iss[1].Path != "/net" {
		t.Fatalf("unexpected issues: %v", iss)
	}
	if iss[0].Message != "duplicate key 'ip' at net" {
		t.Fatalf("unexpected message: %q", iss[0].Message)
	}
}

func TestDetectJSONDuplicateKeysBytes_Limit(t *testing.T) {
	iss, err := DetectJSONDuplicateKeysBytes([]byte(`{"a":1,"a":2,"a":3}`), 1)
	if err != nil || len(iss) != 1 {
		t.Fatalf("expected exactly one issue, got %v (err=%v)", iss, err)
	}
}

func TestDetectJSONDuplicateKeysBytes_Malformed(t *testing.T) {
	_, err := DetectJSONDuplicateKeysBytes([]byte(`{"a":}`), -1)
	var de *DecodeError
	if !errors.As(err, &de) || de.Code != CodeParseError {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}
