// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package rpc mounts plain Go handler methods as Connect procedures that speak
// JSON, and maps domain errors to Connect codes.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/curioswitch/larder/common/image"
	"github.com/curioswitch/larder/common/larderdb"
	"github.com/curioswitch/larder/frontend/server/internal/apiclient"
	"github.com/curioswitch/larder/frontend/server/internal/auth"
	"github.com/curioswitch/larder/frontend/server/internal/pantry"
	"github.com/curioswitch/larder/frontend/server/internal/shopping"
	"github.com/curioswitch/larder/frontend/server/internal/store"
	"github.com/curioswitch/larder/frontend/server/internal/upload"
)

// Codec encodes messages with encoding/json. It replaces the protobuf JSON
// codec registered under the same name.
type Codec struct{}

func (Codec) Name() string {
	return "json"
}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// Mux is where procedures are mounted, e.g. a chi router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MaxRequestBytes bounds request messages. Images arrive base64 encoded inside
// them, so it leaves room for a data URL of upload.MaxImageBytes.
const MaxRequestBytes = 16 << 20

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{
		connect.WithCodec(Codec{}),
		connect.WithReadMaxBytes(MaxRequestBytes),
	}, opts...)
}

// HandleUnary mounts impl as the unary procedure.
func HandleUnary[Req, Res any](mux Mux, procedure string, impl func(context.Context, *Req) (*Res, error), opts ...connect.HandlerOption) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure,
		func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
			res, err := impl(ctx, req.Msg)
			if err != nil {
				return nil, toConnectError(ctx, procedure, err)
			}
			return connect.NewResponse(res), nil
		},
		handlerOptions(opts)...,
	))
}

// HandleServerStream mounts impl as the server streaming procedure. impl sends
// messages with send until it returns.
func HandleServerStream[Req, Res any](mux Mux, procedure string, impl func(context.Context, *Req, func(*Res) error) error, opts ...connect.HandlerOption) {
	mux.Handle(procedure, connect.NewServerStreamHandler(procedure,
		func(ctx context.Context, req *connect.Request[Req], stream *connect.ServerStream[Res]) error {
			if err := impl(ctx, req.Msg, stream.Send); err != nil {
				return toConnectError(ctx, procedure, err)
			}
			return nil
		},
		handlerOptions(opts)...,
	))
}

func toConnectError(ctx context.Context, procedure string, err error) error {
	var cerr *connect.Error
	if errors.As(err, &cerr) {
		return cerr
	}
	code := Code(err)
	if code == connect.CodeInternal {
		slog.ErrorContext(ctx, "rpc: unhandled error", "procedure", procedure, "error", err)
	}
	return connect.NewError(code, err)
}

// Code returns the Connect code for err.
func Code(err error) connect.Code {
	var apiErr *apiclient.Error
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return connect.CodeUnauthenticated
	case larderdb.IsInvalid(err),
		upload.IsValidation(err),
		errors.Is(err, image.ErrInvalidDataURL),
		errors.Is(err, shopping.ErrEmptyName):
		return connect.CodeInvalidArgument
	case errors.Is(err, store.ErrCategoryNotFound),
		errors.Is(err, store.ErrRecipeNotFound),
		errors.Is(err, store.ErrProfileNotFound),
		errors.Is(err, pantry.ErrItemNotFound),
		errors.Is(err, shopping.ErrListNotFound),
		errors.Is(err, shopping.ErrItemNotFound):
		return connect.CodeNotFound
	case errors.As(err, &apiErr):
		return connect.CodeUnavailable
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}
