package main

import (
	"testing"
	"time"
)

func TestWriteTimeoutCoversSummary(t *testing.T) {
	httpTimeout := 10 * time.Second
	got := writeTimeout(httpTimeout)
	if got <= 3*httpTimeout {
		t.Fatalf("write timeout %s does not cover three upstream calls of %s", got, httpTimeout)
	}
}
