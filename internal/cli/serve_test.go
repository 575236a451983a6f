package cli

import (
	"net"
	"testing"
)

func TestListenFrom_SkipsBusyPort(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatal(err)
	}
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	ln, err := listenFrom(port, 20)
	if err != nil {
		t.Fatalf("listenFrom: %v", err)
	}
	defer ln.Close()

	got := ln.Addr().(*net.TCPAddr).Port
	if got <= port || got >= port+20 {
		t.Errorf("port = %d, want in (%d, %d)", got, port, port+20)
	}
}

func TestListenFrom_NoneFree(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatal(err)
	}
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	if ln, err := listenFrom(port, 1); err == nil {
		ln.Close()
		t.Error("expected an error when the only candidate is taken")
	}
}
