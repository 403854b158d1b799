package uploader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// consecutive network failures tolerated before a video transfer gives up
const maxResumeAttempts = 3

const defaultChunkSize = 8 << 20

// progressReader publishes a byte-count ratio as the body is consumed
type progressReader struct {
	inner io.Reader
	read  int64
	total int64
	sink  *monotonicSink
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.inner.Read(b)
	p.read += int64(n)
	if p.total > 0 {
		p.sink.Publish(int(p.read * 100 / p.total))
	}
	return n, err
}

// TransferImage moves the whole file to the presigned target in one
// request. Progress is a plain byte ratio.
func (c *Client) TransferImage(ctx context.Context, ticket *Ticket, file io.Reader, size int64, sink ProgressSink) error {
	mono := newMonotonicSink(sink)
	mono.Publish(0)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, ticket.UploadURL, &progressReader{inner: file, total: size, sink: mono})
	if err != nil {
		return err
	}
	req.ContentLength = size
	for name, value := range ticket.Headers {
		req.Header.Set(name, value)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransferError{Message: err.Error(), Network: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &TransferError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	mono.Publish(100)
	return nil
}

// TransferVideo moves the file to the resumable target in sequential
// chunks. A transport loss does not restart from byte zero: the client
// probes the server for the offset it expects and resumes there. The
// server answering 409 on an offset disagreement carries its expected
// offset the same way, so the two never diverge for long.
func (c *Client) TransferVideo(ctx context.Context, ticket *Ticket, file io.ReadSeeker, size int64, sink ProgressSink) error {
	mono := newMonotonicSink(sink)
	mono.Publish(0)

	chunkSize := ticket.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	var offset int64
	failures := 0
	conflicts := 0

	for offset < size {
		if err := ctx.Err(); err != nil {
			return &TransferError{Message: err.Error(), Network: true}
		}

		length := chunkSize
		if remaining := size - offset; remaining < length {
			length = remaining
		}
		end := offset + length - 1

		if _, err := file.Seek(offset, io.SeekStart); err != nil {
			return fmt.Errorf("could not seek source: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, ticket.UploadURL, io.LimitReader(file, length))
		if err != nil {
			return err
		}
		req.ContentLength = length
		req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", offset, end, size))
		for name, value := range ticket.Headers {
			req.Header.Set(name, value)
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			failures++
			if failures > maxResumeAttempts {
				return &TransferError{Message: err.Error(), Network: true}
			}
			resumed, probeErr := c.probeOffset(ctx, ticket)
			if probeErr != nil {
				return &TransferError{Message: probeErr.Error(), Network: true}
			}
			offset = resumed
			continue
		}

		switch {
		case resp.StatusCode == http.StatusConflict:
			// the server expects a different offset; adopt it, but give
			// up if conflicts keep coming back to back
			conflicts++
			resumed, headerErr := offsetHeader(resp)
			resp.Body.Close()
			if headerErr != nil {
				return &TransferError{Status: http.StatusConflict, Message: headerErr.Error()}
			}
			if conflicts > maxResumeAttempts {
				return &TransferError{Status: http.StatusConflict, Message: fmt.Sprintf("offset conflicts persist after %d resyncs", maxResumeAttempts)}
			}
			offset = resumed
			continue
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return &TransferError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}

		resp.Body.Close()
		failures = 0
		conflicts = 0
		offset = end + 1
		mono.Publish(int(offset * 100 / size))
	}

	mono.Publish(100)
	return nil
}

// probeOffset asks the server which byte offset the open session expects
// next
func (c *Client) probeOffset(ctx context.Context, ticket *Ticket) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodHead, ticket.UploadURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("offset probe answered %d", resp.StatusCode)
	}
	return offsetHeader(resp)
}

func offsetHeader(resp *http.Response) (int64, error) {
	raw := resp.Header.Get("Upload-Offset")
	if raw == "" {
		return 0, fmt.Errorf("response carries no Upload-Offset header")
	}
	offset, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed Upload-Offset %q", raw)
	}
	return offset, nil
}
