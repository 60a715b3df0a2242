package dashapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"FinDash/internal/domain/models"
	drepo "FinDash/internal/domain/repository"
	xhttp "FinDash/pkg/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-fetch id so the status service can correlate logs.
const RequestIDHeader = "X-Request-ID"

// ErrFetchFailure is the single failure kind of a dashboard fetch.
var ErrFetchFailure = errors.New("fetch failure")

// FetchError wraps whatever went wrong (transport, status, decode, validation).
type FetchError struct {
	Op        string // request, decode or validate
	RequestID string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("dashboard %s (request %s): %v", e.Op, e.RequestID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFetchFailure) match any FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetchFailure }

// Client pulls snapshots from the status service's dashboard-data endpoint.
type Client struct {
	http     *xhttp.Client
	url      string
	validate *validator.Validate
}

// New creates a snapshot source for url.
func New(httpClient *xhttp.Client, url string) drepo.SnapshotSource {
	return &Client{
		http:     httpClient,
		url:      url,
		validate: validator.New(),
	}
}

// Fetch issues one GET and returns the decoded, validated snapshot.
func (c *Client) Fetch(ctx context.Context) (*models.Snapshot, error) {
	var snap models.Snapshot
	reqID := uuid.NewString()
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     c.url,
		Headers: map[string]string{RequestIDHeader: reqID},
	}, &snap)
	if err != nil {
		op := "request"
		if isDecodeError(err) {
			op = "decode"
		}
		return nil, &FetchError{Op: op, RequestID: reqID, Err: err}
	}

	if err := c.validate.StructCtx(ctx, &snap); err != nil {
		return nil, &FetchError{Op: "validate", RequestID: reqID, Err: err}
	}
	return &snap, nil
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}
