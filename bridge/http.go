package bridge

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"resty.dev/v3"

	"github.com/packetloom/engineio/packet"
	"github.com/packetloom/engineio/parser"
	"github.com/packetloom/engineio/pkg/log"
	"github.com/packetloom/engineio/pkg/types"
)

var httpLog = log.NewLog("engineio:bridge:http")

// NewPollingClient returns a resty client configured to transparently
// decompress "br" and "zstd" long-polling responses, the two encodings the
// standard library's own transport-level decompression doesn't understand.
func NewPollingClient() *resty.Client {
	client := resty.New()
	client.AddContentDecompresser("br", decompressBrotli)
	client.AddContentDecompresser("zstd", decompressZstd)
	return client
}

func decompressBrotli(r io.ReadCloser) (io.ReadCloser, error) {
	return &wrappedReader{s: r, r: brotli.NewReader(r)}, nil
}

func decompressZstd(r io.ReadCloser) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(r, nil)
	if err != nil {
		return nil, err
	}
	return &wrappedReader{s: r, r: zr, closer: zr.Close}, nil
}

// wrappedReader adapts a reader without its own Close (brotli.Reader) or
// whose Close doesn't return an error (zstd.Decoder) to io.ReadCloser,
// while still closing the underlying response body.
type wrappedReader struct {
	s      io.ReadCloser
	r      io.Reader
	closer func()
}

func (w *wrappedReader) Read(p []byte) (int, error) { return w.r.Read(p) }

func (w *wrappedReader) Close() error {
	if w.closer != nil {
		w.closer()
	}
	return w.s.Close()
}

// FetchPayload issues one long-polling GET and decodes the response body as
// an Engine.IO payload. Decompression of a br/zstd Content-Encoding is
// handled transparently by client (see NewPollingClient); gzip and deflate
// are understood by resty's own transport.
func FetchPayload(ctx context.Context, client *resty.Client, url string, binaryType packet.BinaryType) ([]*packet.Packet, error) {
	resp, err := client.R().SetContext(ctx).Execute(http.MethodGet, url)
	if err != nil {
		return nil, fmt.Errorf("engineio: polling GET %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("engineio: polling GET %s: unexpected status %d", url, resp.StatusCode())
	}

	body := resp.Bytes()
	httpLog.Debugf("fetched payload of %d bytes", len(body))

	var input any = body
	if ct := resp.Header().Get("Content-Type"); ct == "text/plain" || ct == "" {
		input = string(body)
	}

	return parser.DecodePayloadAll(input, binaryType)
}

// CompressPayload compresses an encoded payload for the given
// Accept-Encoding negotiated value ("gzip", "deflate", "br" or "zstd"); any
// other value returns data unchanged. This mirrors the server-side long
// polling transport's own compression switch.
func CompressPayload(data types.BufferInterface, encoding string) (types.BufferInterface, error) {
	switch encoding {
	case "gzip", "deflate", "br", "zstd":
	default:
		return data, nil
	}

	out := types.NewBytesBuffer(nil)
	switch encoding {
	case "gzip":
		w, err := gzip.NewWriterLevel(out, gzip.DefaultCompression)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(w, data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	case "deflate":
		w, err := flate.NewWriter(out, flate.DefaultCompression)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(w, data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	case "br":
		w := brotli.NewWriterLevel(out, brotli.DefaultCompression)
		if _, err := io.Copy(w, data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	case "zstd":
		w, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(w, data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
