package bridge

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"

	"github.com/packetloom/engineio/packet"
	"github.com/packetloom/engineio/pkg/types"
)

func TestCompressPayloadUnknownEncodingPassesThrough(t *testing.T) {
	data := types.NewBytesBuffer([]byte("hello world"))
	out, err := CompressPayload(data, "identity")
	if err != nil {
		t.Fatalf("CompressPayload: %v", err)
	}
	if out != data {
		t.Fatalf("CompressPayload should return the input buffer unchanged for an unknown encoding")
	}
}

func TestCompressPayloadGzip(t *testing.T) {
	data := types.NewBytesBuffer([]byte("hello world"))
	out, err := CompressPayload(data, "gzip")
	if err != nil {
		t.Fatalf("CompressPayload: %v", err)
	}

	r, err := gzip.NewReader(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "hello world" {
		t.Fatalf("decompressed = %q, want %q", got, "hello world")
	}
}

func TestCompressPayloadDeflate(t *testing.T) {
	data := types.NewBytesBuffer([]byte("hello world"))
	out, err := CompressPayload(data, "deflate")
	if err != nil {
		t.Fatalf("CompressPayload: %v", err)
	}

	r := flate.NewReader(bytes.NewReader(out.Bytes()))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "hello world" {
		t.Fatalf("decompressed = %q, want %q", got, "hello world")
	}
}

func TestCompressPayloadBrotli(t *testing.T) {
	data := types.NewBytesBuffer([]byte("hello world"))
	out, err := CompressPayload(data, "br")
	if err != nil {
		t.Fatalf("CompressPayload: %v", err)
	}

	got, err := io.ReadAll(brotli.NewReader(bytes.NewReader(out.Bytes())))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "hello world" {
		t.Fatalf("decompressed = %q, want %q", got, "hello world")
	}
}

func TestCompressPayloadZstd(t *testing.T) {
	data := types.NewBytesBuffer([]byte("hello world"))
	out, err := CompressPayload(data, "zstd")
	if err != nil {
		t.Fatalf("CompressPayload: %v", err)
	}

	r, err := zstd.NewReader(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("zstd.NewReader: %v", err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "hello world" {
		t.Fatalf("decompressed = %q, want %q", got, "hello world")
	}
}

func TestFetchPayloadDecompressesBrotli(t *testing.T) {
	payload, err := CompressPayload(types.NewStringBufferString("6:4hello"), "br")
	if err != nil {
		t.Fatalf("CompressPayload: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write(payload.Bytes())
	}))
	defer server.Close()

	packets, err := FetchPayload(context.Background(), NewPollingClient(), server.URL, packet.BinaryTypeBuffer)
	if err != nil {
		t.Fatalf("FetchPayload: %v", err)
	}
	if len(packets) != 1 || packets[0].Type != packet.MESSAGE {
		t.Fatalf("packets = %+v, want one MESSAGE packet", packets)
	}
	data, err := io.ReadAll(packets[0].Data)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("packets[0].Data = %q, want %q", data, "hello")
	}
}

func TestFetchPayloadDecompressesZstd(t *testing.T) {
	payload, err := CompressPayload(types.NewStringBufferString("3:4hi"), "zstd")
	if err != nil {
		t.Fatalf("CompressPayload: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "zstd")
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write(payload.Bytes())
	}))
	defer server.Close()

	packets, err := FetchPayload(context.Background(), NewPollingClient(), server.URL, packet.BinaryTypeBuffer)
	if err != nil {
		t.Fatalf("FetchPayload: %v", err)
	}
	if len(packets) != 1 || packets[0].Type != packet.MESSAGE {
		t.Fatalf("packets = %+v, want one MESSAGE packet", packets)
	}
	data, err := io.ReadAll(packets[0].Data)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "hi" {
		t.Fatalf("packets[0].Data = %q, want %q", data, "hi")
	}
}

func TestFetchPayloadUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := FetchPayload(context.Background(), NewPollingClient(), server.URL, packet.BinaryTypeBuffer); err == nil {
		t.Fatalf("expected an error for a non-200 response")
	}
}
