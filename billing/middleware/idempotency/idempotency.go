// Package idempotency replays responses of bill-mutating endpoints so that a
// client retrying a create or charge never creates a second bill or a second
// charge.
package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/middleware"
	"encore.dev/rlog"
	"encore.dev/storage/cache"

	"encore.app/billing/model"
)

const Header = "X-Idempotency-Key"

//encore:middleware target=tag:idempotency
func IdempotencyMiddleware(req middleware.Request, next middleware.Next) middleware.Response {
	key, err := requestKey(req)
	if err != nil {
		return middleware.Response{Err: err}
	}
	ctx := req.Context()
	fp := fingerprint(req)

	claimErr := ResponseCache.SetIfNotExists(ctx, key, model.IdempotentResponse{
		State:       model.RequestStateInFlight,
		Fingerprint: fp,
		StartedAt:   time.Now(),
	})
	switch {
	case claimErr == nil:
		return complete(ctx, key, fp, next(req))
	case errors.Is(claimErr, cache.KeyExists):
		return replay(req, next, key, fp)
	default:
		rlog.Error("failed to claim idempotency key", "path", key.Path, "error", claimErr)
		return middleware.Response{Err: &errs.Error{Code: errs.Unavailable, Message: "failed to check idempotency"}}
	}
}

// requestKey reads the idempotency key header; it is required on tagged endpoints.
func requestKey(req middleware.Request) (model.RequestKey, *errs.Error) {
	var key string
	if headers := req.Data().Headers; headers != nil {
		key = strings.TrimSpace(headers.Get(Header))
	}
	if key == "" {
		return model.RequestKey{}, &errs.Error{Code: errs.InvalidArgument, Message: Header + " header is required"}
	}
	return model.RequestKey{Path: req.Data().Path, Key: key}, nil
}

// fingerprint hashes the decoded request payload so a key reused with a
// different body is detected.
func fingerprint(req middleware.Request) string {
	payload := req.Data().Payload
	if payload == nil {
		return ""
	}
	body, err := json.Marshal(payload)
	if err != nil {
		rlog.Error("failed to marshal request payload", "error", err)
		return ""
	}
	return digest(body)
}

func digest(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// complete stores a successful response for replay. Failed requests release
// the key so the client can retry them.
func complete(ctx context.Context, key model.RequestKey, fp string, resp middleware.Response) middleware.Response {
	if resp.Err != nil {
		if _, err := ResponseCache.Delete(ctx, key); err != nil {
			rlog.Error("failed to release idempotency key", "path", key.Path, "error", err)
		}
		return resp
	}

	entry := model.IdempotentResponse{
		State:       model.RequestStateCompleted,
		Fingerprint: fp,
		CompletedAt: time.Now(),
	}
	if resp.Payload != nil {
		body, err := json.Marshal(resp.Payload)
		if err != nil {
			rlog.Error("failed to marshal response for replay", "path", key.Path, "error", err)
			return resp
		}
		entry.Response = body
	}
	if err := ResponseCache.Set(ctx, key, entry); err != nil {
		rlog.Error("failed to cache response for replay", "path", key.Path, "error", err)
	}
	return resp
}

func replay(req middleware.Request, next middleware.Next, key model.RequestKey, fp string) middleware.Response {
	entry, err := ResponseCache.Get(req.Context(), key)
	if err != nil {
		// Released between the claim and the read
		if errors.Is(err, cache.Miss) {
			return IdempotencyMiddleware(req, next)
		}
		rlog.Error("failed to read idempotency entry", "path", key.Path, "error", err)
		return middleware.Response{Err: &errs.Error{Code: errs.Unavailable, Message: "failed to check idempotency"}}
	}

	if err := checkFingerprint(entry, fp); err != nil {
		return middleware.Response{Err: err}
	}

	switch entry.State {
	case model.RequestStateInFlight:
		rlog.Info("request already in flight", "path", key.Path, "key", key.Key)
		return middleware.Response{Err: &errs.Error{Code: errs.Aborted, Message: "request is already being processed"}}
	case model.RequestStateCompleted:
		return replayCompleted(req, next, entry, key)
	default:
		rlog.Warn("unknown idempotency entry state", "path", key.Path, "state", entry.State)
		return next(req)
	}
}

// checkFingerprint rejects a key reused with a different request body.
func checkFingerprint(entry model.IdempotentResponse, fp string) *errs.Error {
	if fp != "" && entry.Fingerprint != "" && fp != entry.Fingerprint {
		return &errs.Error{Code: errs.InvalidArgument, Message: "idempotency key conflict: request body does not match previous request"}
	}
	return nil
}

func replayCompleted(req middleware.Request, next middleware.Next, entry model.IdempotentResponse, key model.RequestKey) middleware.Response {
	if len(entry.Response) > 0 {
		if api := req.Data().API; api != nil && api.ResponseType != nil {
			payload := reflect.New(api.ResponseType.Elem()).Interface()
			err := json.Unmarshal(entry.Response, payload)
			if err == nil {
				rlog.Info("replaying cached response", "path", key.Path, "key", key.Key)
				return middleware.Response{Payload: payload}
			}
			rlog.Error("failed to decode cached response", "path", key.Path, "error", err)
		}
	}

	// Bill operations are idempotent on their own, so running again is safe
	return next(req)
}
